package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

const formKind = "form"

type ManageFormsUseCase struct {
	Repo        entity.FormRepositoryInterface
	Submissions entity.FormSubmissionRepositoryInterface
	Cache       SlugCache
	Now         func() time.Time
}

func NewManageFormsUseCase(repo entity.FormRepositoryInterface, submissions entity.FormSubmissionRepositoryInterface, cache SlugCache) *ManageFormsUseCase {
	return &ManageFormsUseCase{Repo: repo, Submissions: submissions, Cache: cache, Now: time.Now}
}

func (uc *ManageFormsUseCase) List(ctx context.Context) ([]*entity.Form, error) {
	return uc.Repo.Find(ctx)
}

func (uc *ManageFormsUseCase) Get(ctx context.Context, id string) (*entity.Form, error) {
	return uc.Repo.Get(ctx, id)
}

func (uc *ManageFormsUseCase) Create(ctx context.Context, input FormInput) (*entity.Form, error) {
	if errs := ValidateFormInput(input, true); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	name := strings.TrimSpace(*input.Name)
	now := uc.Now()
	return uc.Repo.Create(ctx, &entity.Form{
		Name:        name,
		Slug:        entity.NewSlug(name, formKind),
		Description: deref(input.Description, ""),
		Fields:      deref(input.Fields, entity.DefaultFormFields()),
		Settings:    deref(input.Settings, entity.DefaultFormSettings()),
		Status:      deref(input.Status, entity.PageActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (uc *ManageFormsUseCase) Update(ctx context.Context, id string, input FormInput) (*entity.Form, error) {
	if errs := ValidateFormInput(input, false); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	patch := pagePatch(input.PageInput)
	if input.Fields != nil {
		patch["fields"] = *input.Fields
	}
	if input.Settings != nil {
		patch["settings"] = *input.Settings
	}

	form, err := uc.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	forgetSlug(ctx, uc.Cache, formKind, form.Slug)
	return form, nil
}

func (uc *ManageFormsUseCase) Delete(ctx context.Context, id string) error {
	form, err := uc.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return err
	}
	forgetSlug(ctx, uc.Cache, formKind, form.Slug)
	return nil
}

// ResolvePublic returns the active form behind a public link.
func (uc *ManageFormsUseCase) ResolvePublic(ctx context.Context, slug string) (*entity.Form, error) {
	form, err := resolveBySlug(ctx, uc.Cache, uc.Repo, formKind, slug)
	if err != nil {
		return nil, err
	}
	if form.Status != entity.PageActive {
		return nil, fmt.Errorf("form %s is inactive: %w", slug, entity.ErrNotFound)
	}
	return form, nil
}

func (uc *ManageFormsUseCase) ListSubmissions(ctx context.Context, formID string) ([]*entity.FormSubmission, error) {
	if _, err := uc.Repo.Get(ctx, formID); err != nil {
		return nil, err
	}
	return uc.Submissions.Find(ctx, entity.Where("form_id", formID))
}
