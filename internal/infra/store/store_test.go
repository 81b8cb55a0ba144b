package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/financekeem/internal/entity"
)

func TestUniqueKey(t *testing.T) {
	key, ok := UniqueKey(Leads, Document{"email": " Ana@Example.com"})
	assert.True(t, ok)
	assert.Equal(t, "ana@example.com", key)

	_, ok = UniqueKey(Leads, Document{"email": ""})
	assert.False(t, ok, "leads without email are never deduplicated")

	_, ok = UniqueKey(FormSubmissions, Document{"form_id": "f1"})
	assert.False(t, ok)

	key, ok = UniqueKey(Bookings, Document{"client_email": "A@b.com", "scheduled_date": "2026-03-02", "scheduled_time": "09:00"})
	assert.True(t, ok)
	assert.Equal(t, "a@b.com|2026-03-02|09:00", key)
}

func TestMatches(t *testing.T) {
	doc := Document{"id": "1", "slug": "quiz-abc", "duration": float64(30), "active": true}

	assert.True(t, Matches(doc, nil))
	assert.True(t, Matches(doc, []entity.Filter{entity.Where("slug", "quiz-abc")}))
	assert.True(t, Matches(doc, []entity.Filter{entity.Where("duration", "30"), entity.Where("active", "true")}))
	assert.False(t, Matches(doc, []entity.Filter{entity.Where("slug", "quiz-abc"), entity.Where("id", "2")}))
	assert.False(t, Matches(doc, []entity.Filter{entity.Where("missing", "x")}))
	assert.True(t, Matches(doc, []entity.Filter{entity.Where("missing", "")}))
}

func TestPrepareInsert(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	doc := PrepareInsert(Document{"name": "x", "created_at": "0001-01-01T00:00:00Z"}, now)
	assert.NotEmpty(t, doc.ID())
	assert.Equal(t, Timestamp(now), doc["created_at"])
	assert.Equal(t, Timestamp(now), doc["updated_at"])

	kept := PrepareInsert(Document{"id": "fixed", "created_at": "2025-01-01T00:00:00Z"}, now)
	assert.Equal(t, "fixed", kept.ID())
	assert.Equal(t, "2025-01-01T00:00:00Z", kept["created_at"])
}

func TestPreparePatchAndMerge(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	stored := Document{"id": "1", "name": "old", "phone": "1", "created_at": "2025-01-01T00:00:00Z"}

	patch := PreparePatch(entity.Patch{"id": "hijack", "created_at": "x", "name": "new"}, now)
	assert.NotContains(t, patch, "id")
	assert.NotContains(t, patch, "created_at")

	merged := Merge(stored, patch)
	assert.Equal(t, "1", merged.ID())
	assert.Equal(t, "new", merged["name"])
	assert.Equal(t, "1", merged["phone"])
	assert.Equal(t, "2025-01-01T00:00:00Z", merged["created_at"])
	assert.Equal(t, Timestamp(now), merged["updated_at"])
	assert.Equal(t, "old", stored["name"], "stored document is not mutated")
}

func TestSortNewestFirst(t *testing.T) {
	docs := []Document{
		{"id": "a", "created_at": "2026-01-01T00:00:00Z"},
		{"id": "c", "created_at": "2026-01-03T00:00:00.5Z"},
		{"id": "b", "created_at": "2026-01-03T00:00:00Z"},
	}
	SortNewestFirst(docs)

	assert.Equal(t, []string{"c", "b", "a"}, []string{docs[0].ID(), docs[1].ID(), docs[2].ID()})
}
