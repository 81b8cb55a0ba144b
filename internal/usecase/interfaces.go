package usecase

import (
	"context"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
)

type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// SlugCache caches public pages by slug. A miss is (false, nil).
type SlugCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
	Purge(ctx context.Context) error
}

type Recorder interface {
	LeadReconciled(outcome string)
	BookingCreated(outcome string)
	QuizScored(state entity.ProtectionState)
}

type LeadReconciler interface {
	Execute(ctx context.Context, c entity.LeadCandidate) (*entity.Lead, error)
}

type DataClearer interface {
	Clear(ctx context.Context) error
}

type nopRecorder struct{}

func (nopRecorder) LeadReconciled(string)             {}
func (nopRecorder) BookingCreated(string)             {}
func (nopRecorder) QuizScored(entity.ProtectionState) {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// publish never fails the caller; delivery is best effort.
func publish(ctx context.Context, p EventPublisher, event entity.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("type", event.Type).Warn("event publish failed")
	}
}
