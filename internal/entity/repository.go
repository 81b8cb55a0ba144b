package entity

import (
	"context"
	"encoding/json"
)

// Filter is an equality match on a top-level record field.
type Filter struct {
	Field string
	Value string
}

func Where(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Patch is a shallow set of fields merged into a stored record.
type Patch map[string]any

// PatchOf converts a full record into a patch carrying all of its JSON fields.
func PatchOf(v any) (Patch, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var p Patch
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return p, nil
}

type Repository[T any] interface {
	Find(ctx context.Context, filters ...Filter) ([]*T, error)
	FindOne(ctx context.Context, filters ...Filter) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id string, patch Patch) (*T, error)
	Delete(ctx context.Context, id string) error
}

type LeadRepositoryInterface = Repository[Lead]
type FormRepositoryInterface = Repository[Form]
type QuizRepositoryInterface = Repository[Quiz]
type BookingPageRepositoryInterface = Repository[BookingPage]
type BookingRepositoryInterface = Repository[Booking]
type FormSubmissionRepositoryInterface = Repository[FormSubmission]
type QuizResponseRepositoryInterface = Repository[QuizResponse]
