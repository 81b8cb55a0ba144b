package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
)

const (
	OutcomeCreated   = "created"
	OutcomeUpdated   = "updated"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

const DefaultLeadSource = "website"

// ReconcileLeadUseCase finds-or-creates the lead for a capture event and merges it.
// Calls for the same email are serialized; a unique-index conflict from storage
// (another process won the create) is resolved by merging into the winner.
type ReconcileLeadUseCase struct {
	Repo    entity.LeadRepositoryInterface
	Events  EventPublisher
	Metrics Recorder
	Now     func() time.Time

	locks *keyedMutex
}

func NewReconcileLeadUseCase(repo entity.LeadRepositoryInterface, events EventPublisher, metrics Recorder) *ReconcileLeadUseCase {
	return &ReconcileLeadUseCase{
		Repo:    repo,
		Events:  events,
		Metrics: orNop(metrics),
		Now:     time.Now,
		locks:   newKeyedMutex(),
	}
}

func (uc *ReconcileLeadUseCase) Execute(ctx context.Context, c entity.LeadCandidate) (*entity.Lead, error) {
	c.Email = entity.NormalizeEmail(c.Email)

	var (
		lead    *entity.Lead
		created bool
		err     error
	)
	if c.Email == "" {
		lead, err = uc.Repo.Create(ctx, entity.NewLead(c, uc.Now()))
		created = true
	} else {
		lead, created, err = uc.reconcileByEmail(ctx, c)
	}

	if err != nil {
		uc.Metrics.LeadReconciled(OutcomeFailed)
		return nil, err
	}

	eventType, outcome := entity.EventLeadUpdated, OutcomeUpdated
	if created {
		eventType, outcome = entity.EventLeadCreated, OutcomeCreated
	}
	uc.Metrics.LeadReconciled(outcome)
	log.WithFields(log.Fields{"lead_id": lead.ID, "source": c.Source, "outcome": outcome}).Debug("lead reconciled")

	publish(ctx, uc.Events, entity.Event{
		Type:       eventType,
		LeadID:     lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Status:     string(lead.Status),
		Source:     lead.Source,
		OccurredAt: uc.Now(),
	})

	return lead, nil
}

func (uc *ReconcileLeadUseCase) reconcileByEmail(ctx context.Context, c entity.LeadCandidate) (*entity.Lead, bool, error) {
	unlock := uc.locks.Lock(c.Email)
	defer unlock()

	lead, created, err := uc.upsert(ctx, c)
	if errors.Is(err, entity.ErrConflict) {
		return uc.upsert(ctx, c)
	}
	return lead, created, err
}

func (uc *ReconcileLeadUseCase) upsert(ctx context.Context, c entity.LeadCandidate) (*entity.Lead, bool, error) {
	now := uc.Now()

	existing, err := uc.Repo.FindOne(ctx, entity.Where("email", c.Email))
	switch {
	case errors.Is(err, entity.ErrNotFound):
		lead, err := uc.Repo.Create(ctx, entity.NewLead(c, now))
		return lead, true, err
	case err != nil:
		return nil, false, err
	}

	existing.Merge(c, now)
	lead, err := uc.Repo.Update(ctx, existing.ID, mergePatch(existing))
	return lead, false, err
}

// mergePatch carries only the fields a capture event may change.
func mergePatch(l *entity.Lead) entity.Patch {
	p := entity.Patch{
		"name":             l.Name,
		"phone":            l.Phone,
		"notes":            l.Notes,
		"status":           string(l.Status),
		"protection_state": l.ProtectionState,
	}
	if len(l.QuizAnswers) > 0 {
		p["quiz_answers"] = l.QuizAnswers
	}
	if len(l.PillarScores) > 0 {
		p["pillar_scores"] = l.PillarScores
	}
	if len(l.FormData) > 0 {
		p["form_data"] = l.FormData
	}
	return p
}

// Capture is the public "leave your contact" entry point.
func (uc *ReconcileLeadUseCase) Capture(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	if errs := ValidateCaptureLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = DefaultLeadSource
	}

	return uc.Execute(ctx, entity.LeadCandidate{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Source: source,
	})
}
