package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/infra/store"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrNoRows), entity.ErrNotFound)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23505", Constraint: "leads_email_key"}), entity.ErrConflict)
	assert.ErrorIs(t, translate(context.DeadlineExceeded), context.DeadlineExceeded)

	cause := errors.New("dial tcp: connection refused")
	err := translate(cause)
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)

	assert.ErrorIs(t, translate(&pq.Error{Code: "08006"}), entity.ErrStorageUnavailable)
}

func TestFindQuery(t *testing.T) {
	q, args := findQuery("leads", nil)
	assert.Equal(t, "SELECT doc::text FROM leads ORDER BY created_at DESC", q)
	assert.Empty(t, args)

	q, args = findQuery("bookings", []entity.Filter{
		entity.Where("client_email", "a@b.com"),
		entity.Where("id", "b1"),
	})
	assert.Equal(t, "SELECT doc::text FROM bookings WHERE coalesce(doc->>$1, '') = $2 AND id = $3 ORDER BY created_at DESC", q)
	assert.Equal(t, []any{"client_email", "a@b.com", "b1"}, args)
}

func TestTableRejectsUnknownCollection(t *testing.T) {
	_, err := table(store.Collection("users; DROP TABLE leads"))
	assert.Error(t, err)

	name, err := table(store.BookingPages)
	assert.NoError(t, err)
	assert.Equal(t, "booking_pages", name)
}
