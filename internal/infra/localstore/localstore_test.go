package localstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/infra/store"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndFind(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := s.Insert(ctx, store.Forms, store.Document{"name": name, "slug": name, "status": "active"})
		require.NoError(t, err)
	}

	docs, err := s.Find(ctx, store.Forms, nil)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "third", docs[0]["name"])
	assert.Equal(t, "first", docs[2]["name"])

	doc, err := s.FindOne(ctx, store.Forms, []entity.Filter{entity.Where("slug", "second")})
	require.NoError(t, err)
	assert.Equal(t, "second", doc["name"])

	byID, err := s.FindOne(ctx, store.Forms, []entity.Filter{entity.Where("id", doc.ID())})
	require.NoError(t, err)
	assert.Equal(t, doc, byID)

	_, err = s.FindOne(ctx, store.Forms, []entity.Filter{entity.Where("slug", "nope")})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	other, err := s.Find(ctx, store.Quizzes, nil)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestInsertEnforcesUniqueIndexes(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, store.Leads, store.Document{"email": "a@example.com"})
	require.NoError(t, err)

	_, err = s.Insert(ctx, store.Leads, store.Document{"email": "A@Example.com"})
	assert.ErrorIs(t, err, entity.ErrConflict)

	_, err = s.Insert(ctx, store.Leads, store.Document{"email": ""})
	require.NoError(t, err)
	_, err = s.Insert(ctx, store.Leads, store.Document{"email": ""})
	require.NoError(t, err, "empty emails are not indexed")

	booking := store.Document{"client_email": "c@example.com", "scheduled_date": "2026-03-02", "scheduled_time": "09:00"}
	_, err = s.Insert(ctx, store.Bookings, booking)
	require.NoError(t, err)
	_, err = s.Insert(ctx, store.Bookings, booking)
	assert.ErrorIs(t, err, entity.ErrConflict)

	booking["scheduled_time"] = "10:00"
	_, err = s.Insert(ctx, store.Bookings, booking)
	assert.NoError(t, err)
}

func TestConcurrentInsertsKeepOneLead(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Insert(ctx, store.Leads, store.Document{"email": "race@example.com"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, entity.ErrConflict)
		}
	}
	assert.Equal(t, 1, ok)

	docs, err := s.Find(ctx, store.Leads, nil)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestUpdate(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, store.Leads, store.Document{"email": "a@example.com", "name": "A", "phone": "1"})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	updated, err := s.Update(ctx, store.Leads, created.ID(), entity.Patch{"name": "B", "id": "other", "created_at": "x"})
	require.NoError(t, err)

	assert.Equal(t, created.ID(), updated.ID())
	assert.Equal(t, "B", updated["name"])
	assert.Equal(t, "1", updated["phone"])
	assert.Equal(t, created["created_at"], updated["created_at"])
	assert.Equal(t, "2030-01-01T00:00:00Z", updated["updated_at"])

	_, err = s.Update(ctx, store.Leads, "missing", entity.Patch{"name": "x"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdateMovesUniqueKey(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	a, err := s.Insert(ctx, store.Leads, store.Document{"email": "a@example.com"})
	require.NoError(t, err)
	b, err := s.Insert(ctx, store.Leads, store.Document{"email": "b@example.com"})
	require.NoError(t, err)

	_, err = s.Update(ctx, store.Leads, b.ID(), entity.Patch{"email": "a@example.com"})
	assert.ErrorIs(t, err, entity.ErrConflict)

	_, err = s.Update(ctx, store.Leads, a.ID(), entity.Patch{"email": "c@example.com"})
	require.NoError(t, err)

	_, err = s.Update(ctx, store.Leads, b.ID(), entity.Patch{"email": "a@example.com"})
	assert.NoError(t, err, "released key can be reused")
}

func TestDeleteAndClear(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	doc, err := s.Insert(ctx, store.Quizzes, store.Document{"slug": "quiz-1"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, store.Quizzes, doc.ID()))
	assert.ErrorIs(t, s.Delete(ctx, store.Quizzes, doc.ID()), entity.ErrNotFound)

	_, err = s.Insert(ctx, store.Quizzes, store.Document{"slug": "quiz-1"})
	require.NoError(t, err, "slug is free again after delete")

	_, err = s.Insert(ctx, store.Leads, store.Document{"email": "x@example.com"})
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	for _, c := range store.Collections {
		docs, err := s.Find(ctx, c, nil)
		require.NoError(t, err)
		assert.Empty(t, docs, c)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	repos := store.NewRepositories(s)

	lead, err := repos.Leads.Create(ctx, &entity.Lead{
		Name:        "Ana",
		Email:       "ana@example.com",
		Status:      entity.LeadNew,
		QuizAnswers: map[string]string{"p1": "none"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.False(t, lead.CreatedAt.IsZero())

	found, err := repos.Leads.FindOne(ctx, entity.Where("email", "ana@example.com"))
	require.NoError(t, err)
	assert.Equal(t, lead.ID, found.ID)
	assert.Equal(t, map[string]string{"p1": "none"}, found.QuizAnswers)

	updated, err := repos.Leads.Update(ctx, lead.ID, entity.Patch{"status": "contacted"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadContacted, updated.Status)
	assert.True(t, lead.CreatedAt.Equal(updated.CreatedAt))

	got, err := repos.Leads.Get(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestPingAfterClose(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Ping(context.Background()), entity.ErrStorageUnavailable)
}
