package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/infra/store"
)

// DocumentStore keeps every collection in its own jsonb table.
type DocumentStore struct {
	DB  *sqlx.DB
	now func() time.Time
}

func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{DB: db, now: time.Now}
}

// table returns the collection's table name. Collections are a closed set, never user input.
func table(c store.Collection) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("unknown collection %q", c)
	}
	return string(c), nil
}

func findQuery(tbl string, filters []entity.Filter) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(filters)*2)

	fmt.Fprintf(&b, "SELECT doc::text FROM %s", tbl)
	for i, f := range filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		if f.Field == "id" {
			fmt.Fprintf(&b, "id = $%d", len(args)+1)
			args = append(args, f.Value)
			continue
		}
		fmt.Fprintf(&b, "coalesce(doc->>$%d, '') = $%d", len(args)+1, len(args)+2)
		args = append(args, f.Field, f.Value)
	}
	b.WriteString(" ORDER BY created_at DESC")
	return b.String(), args
}

func (s *DocumentStore) Find(ctx context.Context, c store.Collection, filters []entity.Filter) ([]store.Document, error) {
	tbl, err := table(c)
	if err != nil {
		return nil, err
	}

	query, args := findQuery(tbl, filters)
	var raw []string
	if err := s.DB.SelectContext(ctx, &raw, query, args...); err != nil {
		return nil, translate(err)
	}

	docs := make([]store.Document, 0, len(raw))
	for _, r := range raw {
		doc, err := decode(r)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *DocumentStore) FindOne(ctx context.Context, c store.Collection, filters []entity.Filter) (store.Document, error) {
	tbl, err := table(c)
	if err != nil {
		return nil, err
	}

	query, args := findQuery(tbl, filters)
	var raw string
	if err := s.DB.GetContext(ctx, &raw, query+" LIMIT 1", args...); err != nil {
		return nil, translate(err)
	}
	return decode(raw)
}

func (s *DocumentStore) Insert(ctx context.Context, c store.Collection, doc store.Document) (store.Document, error) {
	tbl, err := table(c)
	if err != nil {
		return nil, err
	}

	doc = store.PrepareInsert(doc, s.now())
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, doc, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4)
		RETURNING doc::text`, tbl)

	var raw string
	err = s.DB.GetContext(ctx, &raw, query,
		doc.ID(),
		string(body),
		store.FieldTime(doc, "created_at"),
		store.FieldTime(doc, "updated_at"),
	)
	if err != nil {
		return nil, translate(err)
	}
	return decode(raw)
}

func (s *DocumentStore) Update(ctx context.Context, c store.Collection, id string, patch entity.Patch) (store.Document, error) {
	tbl, err := table(c)
	if err != nil {
		return nil, err
	}

	now := s.now()
	body, err := json.Marshal(store.PreparePatch(patch, now))
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET doc = doc || $2::jsonb, updated_at = $3
		WHERE id = $1
		RETURNING doc::text`, tbl)

	var raw string
	if err := s.DB.GetContext(ctx, &raw, query, id, string(body), now); err != nil {
		return nil, translate(err)
	}
	return decode(raw)
}

func (s *DocumentStore) Delete(ctx context.Context, c store.Collection, id string) error {
	tbl, err := table(c)
	if err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", tbl), id)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Clear(ctx context.Context) error {
	names := make([]string, len(store.Collections))
	for i, c := range store.Collections {
		names[i] = string(c)
	}

	_, err := s.DB.ExecContext(ctx, "TRUNCATE "+strings.Join(names, ", "))
	return translate(err)
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return translate(s.DB.PingContext(ctx))
}

func (s *DocumentStore) Close() error {
	return s.DB.Close()
}

func decode(raw string) (store.Document, error) {
	var doc store.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

const uniqueViolation = "23505"

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", entity.ErrConflict, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
}
