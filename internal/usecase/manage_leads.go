package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/financekeem/internal/entity"
)

const ManualLeadSource = "manual"

type ManageLeadsUseCase struct {
	Repo       entity.LeadRepositoryInterface
	Reconciler LeadReconciler
}

func NewManageLeadsUseCase(repo entity.LeadRepositoryInterface, reconciler LeadReconciler) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{Repo: repo, Reconciler: reconciler}
}

// List returns leads newest first. Search matches name, email or phone, ignoring case.
func (uc *ManageLeadsUseCase) List(ctx context.Context, q LeadQuery) ([]*entity.Lead, error) {
	var filters []entity.Filter
	if q.Status != "" {
		if !q.Status.Valid() {
			return nil, validationFailed([]ValidationError{{"status", "is not a lead status"}})
		}
		filters = append(filters, entity.Where("status", string(q.Status)))
	}

	leads, err := uc.Repo.Find(ctx, filters...)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return leads, nil
	}

	matched := make([]*entity.Lead, 0, len(leads))
	for _, l := range leads {
		if strings.Contains(strings.ToLower(l.Name), term) ||
			strings.Contains(strings.ToLower(l.Email), term) ||
			strings.Contains(strings.ToLower(l.Phone), term) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (uc *ManageLeadsUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return uc.Repo.Get(ctx, id)
}

// Create goes through reconciliation so an admin entry never duplicates an email.
func (uc *ManageLeadsUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.Name) == "" && strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"name", "name or email is required"})
	}
	if email := strings.TrimSpace(input.Email); email != "" && !isValidEmail(email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if input.Status != "" && !input.Status.Valid() {
		errs = append(errs, ValidationError{"status", "is not a lead status"})
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	return uc.Reconciler.Execute(ctx, entity.LeadCandidate{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Status: input.Status,
		Notes:  input.Notes,
		Source: ManualLeadSource,
	})
}

// Update applies a manual edit. Unlike capture events it sets the status as given.
func (uc *ManageLeadsUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if errs := ValidateLeadUpdate(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	patch := entity.Patch{}
	if input.Name != nil {
		patch["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		patch["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Notes != nil {
		patch["notes"] = *input.Notes
	}
	if input.Status != nil {
		patch["status"] = string(*input.Status)
	}
	if input.Email != nil {
		email := entity.NormalizeEmail(*input.Email)
		if err := uc.emailFree(ctx, id, email); err != nil {
			return nil, err
		}
		patch["email"] = email
	}

	return uc.Repo.Update(ctx, id, patch)
}

func (uc *ManageLeadsUseCase) emailFree(ctx context.Context, id, email string) error {
	if email == "" {
		return nil
	}
	owner, err := uc.Repo.FindOne(ctx, entity.Where("email", email))
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return nil
	case err != nil:
		return err
	case owner.ID != id:
		return fmt.Errorf("email %s belongs to another lead: %w", email, entity.ErrConflict)
	}
	return nil
}

func (uc *ManageLeadsUseCase) Delete(ctx context.Context, id string) error {
	return uc.Repo.Delete(ctx, id)
}
