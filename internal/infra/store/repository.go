package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/financekeem/internal/entity"
)

// Repository maps entity structs onto documents of one collection.
type Repository[T any] struct {
	backend    Backend
	collection Collection
}

func NewRepository[T any](backend Backend, c Collection) *Repository[T] {
	return &Repository[T]{backend: backend, collection: c}
}

func (r *Repository[T]) Find(ctx context.Context, filters ...entity.Filter) ([]*T, error) {
	docs, err := r.backend.Find(ctx, r.collection, filters)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		rec, err := r.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Repository[T]) FindOne(ctx context.Context, filters ...entity.Filter) (*T, error) {
	doc, err := r.backend.FindOne(ctx, r.collection, filters)
	if err != nil {
		return nil, err
	}
	return r.decode(doc)
}

func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, entity.Where("id", id))
}

func (r *Repository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	doc, err := r.encode(rec)
	if err != nil {
		return nil, err
	}

	stored, err := r.backend.Insert(ctx, r.collection, doc)
	if err != nil {
		return nil, err
	}
	return r.decode(stored)
}

func (r *Repository[T]) Update(ctx context.Context, id string, patch entity.Patch) (*T, error) {
	stored, err := r.backend.Update(ctx, r.collection, id, patch)
	if err != nil {
		return nil, err
	}
	return r.decode(stored)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.backend.Delete(ctx, r.collection, id)
}

func (r *Repository[T]) encode(rec *T) (Document, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.collection, err)
	}
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.collection, err)
	}
	return doc, nil
}

func (r *Repository[T]) decode(doc Document) (*T, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.collection, err)
	}
	rec := new(T)
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.collection, err)
	}
	return rec, nil
}

// Repositories bundles one typed repository per collection over a single backend.
type Repositories struct {
	Leads           *Repository[entity.Lead]
	Forms           *Repository[entity.Form]
	Quizzes         *Repository[entity.Quiz]
	BookingPages    *Repository[entity.BookingPage]
	Bookings        *Repository[entity.Booking]
	FormSubmissions *Repository[entity.FormSubmission]
	QuizResponses   *Repository[entity.QuizResponse]
}

func NewRepositories(backend Backend) *Repositories {
	return &Repositories{
		Leads:           NewRepository[entity.Lead](backend, Leads),
		Forms:           NewRepository[entity.Form](backend, Forms),
		Quizzes:         NewRepository[entity.Quiz](backend, Quizzes),
		BookingPages:    NewRepository[entity.BookingPage](backend, BookingPages),
		Bookings:        NewRepository[entity.Booking](backend, Bookings),
		FormSubmissions: NewRepository[entity.FormSubmission](backend, FormSubmissions),
		QuizResponses:   NewRepository[entity.QuizResponse](backend, QuizResponses),
	}
}
