// Package localstore keeps documents in an embedded badger database. It is the
// backend used when no Postgres URL is configured.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/infra/store"
)

// Store is a store.Backend over badger. Each operation runs in its own transaction.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}

	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", entity.ErrStorageUnavailable, dir, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func docKey(c store.Collection, id string) []byte {
	return []byte("d/" + string(c) + "/" + id)
}

func docPrefix(c store.Collection) []byte {
	return []byte("d/" + string(c) + "/")
}

func uniqueKey(c store.Collection, key string) []byte {
	return []byte("u/" + string(c) + "/" + key)
}

func (s *Store) Find(ctx context.Context, c store.Collection, filters []entity.Filter) ([]store.Document, error) {
	docs := []store.Document{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = docPrefix(c)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var doc store.Document
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				return err
			}
			if store.Matches(doc, filters) {
				docs = append(docs, doc)
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	store.SortNewestFirst(docs)
	return docs, nil
}

func (s *Store) FindOne(ctx context.Context, c store.Collection, filters []entity.Filter) (store.Document, error) {
	// id lookups go straight to the key
	if len(filters) == 1 && filters[0].Field == "id" {
		var doc store.Document
		err := s.db.View(func(txn *badger.Txn) error {
			var err error
			doc, err = load(txn, c, filters[0].Value)
			return err
		})
		if err != nil {
			return nil, translate(err)
		}
		return doc, nil
	}

	docs, err := s.Find(ctx, c, filters)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, entity.ErrNotFound
	}
	return docs[0], nil
}

func (s *Store) Insert(ctx context.Context, c store.Collection, doc store.Document) (store.Document, error) {
	doc = store.PrepareInsert(doc, s.now())

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(docKey(c, doc.ID())); err == nil {
			return entity.ErrConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if key, ok := store.UniqueKey(c, doc); ok {
			if err := claim(txn, c, key, doc.ID()); err != nil {
				return err
			}
		}
		return save(txn, c, doc)
	})
	if err != nil {
		return nil, translate(err)
	}
	return doc, nil
}

func (s *Store) Update(ctx context.Context, c store.Collection, id string, patch entity.Patch) (store.Document, error) {
	var merged store.Document

	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := load(txn, c, id)
		if err != nil {
			return err
		}
		merged = store.Merge(current, store.PreparePatch(patch, s.now()))

		oldKey, hadKey := store.UniqueKey(c, current)
		newKey, hasKey := store.UniqueKey(c, merged)
		if hadKey != hasKey || oldKey != newKey {
			if hasKey {
				if err := claim(txn, c, newKey, id); err != nil {
					return err
				}
			}
			if hadKey {
				if err := txn.Delete(uniqueKey(c, oldKey)); err != nil {
					return err
				}
			}
		}
		return save(txn, c, merged)
	})
	if err != nil {
		return nil, translate(err)
	}
	return merged, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		current, err := load(txn, c, id)
		if err != nil {
			return err
		}
		if key, ok := store.UniqueKey(c, current); ok {
			if err := txn.Delete(uniqueKey(c, key)); err != nil {
				return err
			}
		}
		return txn.Delete(docKey(c, id))
	})
	return translate(err)
}

func (s *Store) Clear(ctx context.Context) error {
	return translate(s.db.DropAll())
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return fmt.Errorf("%w: local store closed", entity.ErrStorageUnavailable)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}

func load(txn *badger.Txn, c store.Collection, id string) (store.Document, error) {
	item, err := txn.Get(docKey(c, id))
	if err != nil {
		return nil, err
	}

	var doc store.Document
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	})
	return doc, err
}

func save(txn *badger.Txn, c store.Collection, doc store.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return txn.Set(docKey(c, doc.ID()), body)
}

// claim reserves a unique key for id, failing when another record owns it.
func claim(txn *badger.Txn, c store.Collection, key, id string) error {
	item, err := txn.Get(uniqueKey(c, key))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return txn.Set(uniqueKey(c, key), []byte(id))
	case err != nil:
		return err
	}

	owner, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}
	if string(owner) != id {
		return entity.ErrConflict
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrConflict):
		return err
	case errors.Is(err, badger.ErrKeyNotFound):
		return entity.ErrNotFound
	case errors.Is(err, badger.ErrConflict):
		return entity.ErrConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", entity.ErrStorageUnavailable, err)
	}
}
