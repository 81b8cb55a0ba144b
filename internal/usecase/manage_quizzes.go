package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

const quizKind = "quiz"

type ManageQuizzesUseCase struct {
	Repo      entity.QuizRepositoryInterface
	Responses entity.QuizResponseRepositoryInterface
	Cache     SlugCache
	Now       func() time.Time
}

func NewManageQuizzesUseCase(repo entity.QuizRepositoryInterface, responses entity.QuizResponseRepositoryInterface, cache SlugCache) *ManageQuizzesUseCase {
	return &ManageQuizzesUseCase{Repo: repo, Responses: responses, Cache: cache, Now: time.Now}
}

func (uc *ManageQuizzesUseCase) List(ctx context.Context) ([]*entity.Quiz, error) {
	return uc.Repo.Find(ctx)
}

func (uc *ManageQuizzesUseCase) Get(ctx context.Context, id string) (*entity.Quiz, error) {
	return uc.Repo.Get(ctx, id)
}

// Create defaults the questions to the protection assessment rubric.
func (uc *ManageQuizzesUseCase) Create(ctx context.Context, input QuizInput) (*entity.Quiz, error) {
	if errs := ValidateQuizInput(input, true); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	name := strings.TrimSpace(*input.Name)
	now := uc.Now()
	return uc.Repo.Create(ctx, &entity.Quiz{
		Name:        name,
		Slug:        entity.NewSlug(name, quizKind),
		Description: deref(input.Description, ""),
		Questions:   deref(input.Questions, slices.Clone(entity.ProtectionAssessment)),
		Settings:    deref(input.Settings, entity.DefaultQuizSettings()),
		Status:      deref(input.Status, entity.PageActive),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (uc *ManageQuizzesUseCase) Update(ctx context.Context, id string, input QuizInput) (*entity.Quiz, error) {
	if errs := ValidateQuizInput(input, false); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	patch := pagePatch(input.PageInput)
	if input.Questions != nil {
		patch["questions"] = *input.Questions
	}
	if input.Settings != nil {
		patch["settings"] = *input.Settings
	}

	quiz, err := uc.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	forgetSlug(ctx, uc.Cache, quizKind, quiz.Slug)
	return quiz, nil
}

func (uc *ManageQuizzesUseCase) Delete(ctx context.Context, id string) error {
	quiz, err := uc.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return err
	}
	forgetSlug(ctx, uc.Cache, quizKind, quiz.Slug)
	return nil
}

func (uc *ManageQuizzesUseCase) ResolvePublic(ctx context.Context, slug string) (*entity.Quiz, error) {
	quiz, err := resolveBySlug(ctx, uc.Cache, uc.Repo, quizKind, slug)
	if err != nil {
		return nil, err
	}
	if quiz.Status != entity.PageActive {
		return nil, fmt.Errorf("quiz %s is inactive: %w", slug, entity.ErrNotFound)
	}
	return quiz, nil
}

// ListResponses lists every response, or those of one quiz when quizID is set.
func (uc *ManageQuizzesUseCase) ListResponses(ctx context.Context, quizID string) ([]*entity.QuizResponse, error) {
	if quizID == "" {
		return uc.Responses.Find(ctx)
	}
	return uc.Responses.Find(ctx, entity.Where("quiz_id", quizID))
}
