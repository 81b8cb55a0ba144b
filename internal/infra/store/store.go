package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

type Collection string

const (
	Leads           Collection = "leads"
	Forms           Collection = "forms"
	Quizzes         Collection = "quizzes"
	BookingPages    Collection = "booking_pages"
	Bookings        Collection = "bookings"
	FormSubmissions Collection = "form_submissions"
	QuizResponses   Collection = "quiz_responses"
)

var Collections = []Collection{Leads, Forms, Quizzes, BookingPages, Bookings, FormSubmissions, QuizResponses}

func (c Collection) Valid() bool {
	return slices.Contains(Collections, c)
}

// Document is a stored record as a flat JSON object.
type Document map[string]any

func (d Document) ID() string {
	return FieldString(d, "id")
}

// Backend is the document storage used by every repository.
// Implementations return entity.ErrNotFound, entity.ErrConflict or a wrapped
// entity.ErrStorageUnavailable.
type Backend interface {
	Find(ctx context.Context, c Collection, filters []entity.Filter) ([]Document, error)
	FindOne(ctx context.Context, c Collection, filters []entity.Filter) (Document, error)
	Insert(ctx context.Context, c Collection, doc Document) (Document, error)
	Update(ctx context.Context, c Collection, id string, patch entity.Patch) (Document, error)
	Delete(ctx context.Context, c Collection, id string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Fields whose combined value is unique within a collection.
var uniqueFields = map[Collection][]string{
	Leads:        {"email"},
	Forms:        {"slug"},
	Quizzes:      {"slug"},
	BookingPages: {"slug"},
	Bookings:     {"client_email", "scheduled_date", "scheduled_time"},
}

// UniqueKey returns the case-insensitive unique key of doc. ok is false when the
// collection has no unique index or the leading field is empty (leads without email).
func UniqueKey(c Collection, doc Document) (key string, ok bool) {
	fields, ok := uniqueFields[c]
	if !ok {
		return "", false
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strings.ToLower(strings.TrimSpace(FieldString(doc, f)))
	}
	if parts[0] == "" {
		return "", false
	}
	return strings.Join(parts, "|"), true
}

func FieldString(doc Document, field string) string {
	switch v := doc[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func Matches(doc Document, filters []entity.Filter) bool {
	for _, f := range filters {
		if FieldString(doc, f.Field) != f.Value {
			return false
		}
	}
	return true
}

// Timestamp renders t the way documents store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FieldTime parses a stored timestamp; zero when absent or unparsable.
func FieldTime(doc Document, field string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, FieldString(doc, field))
	if err != nil {
		return time.Time{}
	}
	return t
}

// PrepareInsert copies doc and fills id, created_at and updated_at when absent.
// A zero time counts as absent.
func PrepareInsert(doc Document, now time.Time) Document {
	out := make(Document, len(doc)+3)
	for k, v := range doc {
		out[k] = v
	}

	if out.ID() == "" {
		out["id"] = entity.NewID()
	}
	if FieldTime(out, "created_at").IsZero() {
		out["created_at"] = Timestamp(now)
	}
	if FieldTime(out, "updated_at").IsZero() {
		out["updated_at"] = out["created_at"]
	}
	return out
}

// PreparePatch drops the immutable fields and stamps updated_at.
func PreparePatch(patch entity.Patch, now time.Time) Document {
	out := make(Document, len(patch)+1)
	for k, v := range patch {
		if k == "id" || k == "created_at" {
			continue
		}
		out[k] = v
	}
	out["updated_at"] = Timestamp(now)
	return out
}

// Merge applies a prepared patch on top of a stored document.
func Merge(doc, patch Document) Document {
	out := make(Document, len(doc)+len(patch))
	for k, v := range doc {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func SortNewestFirst(docs []Document) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		return FieldTime(b, "created_at").Compare(FieldTime(a, "created_at"))
	})
}
