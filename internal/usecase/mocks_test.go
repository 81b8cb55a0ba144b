package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/infra/localstore"
	"github.com/xavierca1/financekeem/internal/infra/store"
)

// a Monday
var testNow = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestStore(t *testing.T) (*localstore.Store, *store.Repositories) {
	t.Helper()
	s, err := localstore.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, store.NewRepositories(s)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event entity.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) LeadReconciled(outcome string) {
	m.Called(outcome)
}

func (m *MockRecorder) BookingCreated(outcome string) {
	m.Called(outcome)
}

func (m *MockRecorder) QuizScored(state entity.ProtectionState) {
	m.Called(state)
}

type MockLeadReconciler struct {
	mock.Mock
}

func (m *MockLeadReconciler) Execute(ctx context.Context, c entity.LeadCandidate) (*entity.Lead, error) {
	args := m.Called(ctx, c)
	if v := args.Get(0); v != nil {
		return v.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) lead(args mock.Arguments) (*entity.Lead, error) {
	if v := args.Get(0); v != nil {
		return v.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) Find(ctx context.Context, filters ...entity.Filter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filters)
	if v := args.Get(0); v != nil {
		return v.([]*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) FindOne(ctx context.Context, filters ...entity.Filter) (*entity.Lead, error) {
	return m.lead(m.Called(ctx, filters))
}

func (m *MockLeadRepository) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return m.lead(m.Called(ctx, id))
}

func (m *MockLeadRepository) Create(ctx context.Context, rec *entity.Lead) (*entity.Lead, error) {
	return m.lead(m.Called(ctx, rec))
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, patch entity.Patch) (*entity.Lead, error) {
	return m.lead(m.Called(ctx, id, patch))
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// memCache is a SlugCache over a map, storing JSON like the redis cache does.
type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
	gets  int
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	body, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(body, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = body
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memCache) Purge(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string][]byte{}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func ptr[T any](v T) *T { return &v }
