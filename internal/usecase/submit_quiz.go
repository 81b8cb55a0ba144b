package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

type QuizResolver interface {
	ResolvePublic(ctx context.Context, slug string) (*entity.Quiz, error)
}

type SubmitQuizUseCase struct {
	Quizzes   QuizResolver
	Responses entity.QuizResponseRepositoryInterface
	Leads     LeadReconciler
	Metrics   Recorder
	Now       func() time.Time
}

func NewSubmitQuizUseCase(quizzes QuizResolver, responses entity.QuizResponseRepositoryInterface, leads LeadReconciler, metrics Recorder) *SubmitQuizUseCase {
	return &SubmitQuizUseCase{
		Quizzes:   quizzes,
		Responses: responses,
		Leads:     leads,
		Metrics:   orNop(metrics),
		Now:       time.Now,
	}
}

// Execute scores the answers, logs the response and, when an email was left,
// reconciles the lead with the assessment attached.
func (uc *SubmitQuizUseCase) Execute(ctx context.Context, slug string, input SubmitQuizInput) (*SubmitQuizOutput, error) {
	quiz, err := uc.Quizzes.ResolvePublic(ctx, slug)
	if err != nil {
		return nil, err
	}

	if errs := validateQuizSubmission(quiz, input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	result := entity.ScoreAssessment(input.Answers)

	response, err := uc.Responses.Create(ctx, &entity.QuizResponse{
		QuizID:    quiz.ID,
		Answers:   input.Answers,
		Result:    result,
		CreatedAt: uc.Now(),
	})
	if err != nil {
		return nil, err
	}
	uc.Metrics.QuizScored(result.State)

	if strings.TrimSpace(input.Email) != "" {
		_, err := uc.Leads.Execute(ctx, entity.LeadCandidate{
			Name:            input.Name,
			Email:           input.Email,
			Phone:           input.Phone,
			QuizAnswers:     input.Answers,
			PillarScores:    result.PillarScores(),
			ProtectionState: string(result.State),
			Source:          "quiz:" + quiz.ID,
		})
		if err != nil {
			return nil, err
		}
	}

	out := &SubmitQuizOutput{ResponseID: response.ID}
	if quiz.Settings.ShowResults {
		out.Result = &result
	}
	return out, nil
}

func validateQuizSubmission(quiz *entity.Quiz, input SubmitQuizInput) []ValidationError {
	var errors []ValidationError

	if len(input.Answers) == 0 {
		errors = append(errors, ValidationError{"answers", "at least one answer is required"})
	}

	email := strings.TrimSpace(input.Email)
	switch {
	case email == "" && quiz.Settings.CollectEmail:
		errors = append(errors, ValidationError{"email", "is required"})
	case email != "" && !isValidEmail(email):
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	return errors
}
