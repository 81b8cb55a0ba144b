package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

type FormResolver interface {
	ResolvePublic(ctx context.Context, slug string) (*entity.Form, error)
}

type SubmitFormUseCase struct {
	Forms       FormResolver
	Submissions entity.FormSubmissionRepositoryInterface
	Leads       LeadReconciler
	Now         func() time.Time
}

func NewSubmitFormUseCase(forms FormResolver, submissions entity.FormSubmissionRepositoryInterface, leads LeadReconciler) *SubmitFormUseCase {
	return &SubmitFormUseCase{Forms: forms, Submissions: submissions, Leads: leads, Now: time.Now}
}

// Execute logs the submission and always reconciles a lead from the name,
// email and phone fields, carrying the whole payload as form data.
func (uc *SubmitFormUseCase) Execute(ctx context.Context, slug string, data map[string]any) (*SubmitFormOutput, error) {
	form, err := uc.Forms.ResolvePublic(ctx, slug)
	if err != nil {
		return nil, err
	}

	if errs := validateFormSubmission(form, data); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	submission, err := uc.Submissions.Create(ctx, &entity.FormSubmission{
		FormID:    form.ID,
		Data:      data,
		CreatedAt: uc.Now(),
	})
	if err != nil {
		return nil, err
	}

	_, err = uc.Leads.Execute(ctx, entity.LeadCandidate{
		Name:     textValue(data["name"]),
		Email:    textValue(data["email"]),
		Phone:    textValue(data["phone"]),
		FormData: data,
		Source:   "form:" + form.ID,
	})
	if err != nil {
		return nil, err
	}

	msg := form.Settings.SuccessMessage
	if msg == "" {
		msg = entity.DefaultFormSettings().SuccessMessage
	}
	return &SubmitFormOutput{SubmissionID: submission.ID, Message: msg}, nil
}

func validateFormSubmission(form *entity.Form, data map[string]any) []ValidationError {
	var errors []ValidationError

	for _, f := range form.Fields {
		value := textValue(data[f.ID])
		if f.Required && value == "" {
			errors = append(errors, ValidationError{f.ID, "is required"})
			continue
		}
		if f.Type == "email" && value != "" && !isValidEmail(value) {
			errors = append(errors, ValidationError{f.ID, "is invalid"})
		}
	}

	return errors
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
