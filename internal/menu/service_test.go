package menu

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

type mockCache struct {
	m          sync.RWMutex
	categories []domain.Category
	err        error
}

func (m *mockCache) Get(context.Context) ([]domain.Category, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.categories == nil {
		return nil, ErrCacheMiss
	}
	return m.categories, nil
}

func (m *mockCache) Set(_ context.Context, categories []domain.Category) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.categories = categories
	return nil
}

func (m *mockCache) Delete(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.categories = nil
	return nil
}

func (m *mockCache) cached() []domain.Category {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.categories
}

type mockFetcher struct {
	m          sync.Mutex
	categories []domain.Category
	err        error
	calls      int
}

func (m *mockFetcher) FetchMenu(context.Context) ([]domain.Category, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockFetcher) fetchCalls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.calls
}

func TestService_Load_CacheMissFetchesAndCaches(t *testing.T) {
	fetcher := &mockFetcher{categories: sampleMenu()}
	cache := &mockCache{}
	store := NewStore()

	sut := NewService(fetcher, cache, store)
	categories, err := sut.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, 1, fetcher.fetchCalls())

	// Snapshot got populated.
	_, ok := store.Food("pizza")
	assert.True(t, ok)

	// Cache set happens asynchronously.
	require.Eventually(t, func() bool {
		return cache.cached() != nil
	}, time.Second, 10*time.Millisecond)
}

func TestService_Load_CacheHitSkipsBackend(t *testing.T) {
	fetcher := &mockFetcher{}
	cache := &mockCache{categories: sampleMenu()}
	store := NewStore()

	sut := NewService(fetcher, cache, store)
	categories, err := sut.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, 0, fetcher.fetchCalls())
}

func TestService_Load_FetchErrorPropagates(t *testing.T) {
	wantErr := errors.New("backend down")
	fetcher := &mockFetcher{err: wantErr}
	cache := &mockCache{}

	sut := NewService(fetcher, cache, NewStore())
	_, err := sut.Load(context.Background())
	assert.ErrorIs(t, err, wantErr)
}

func TestService_Refresh_DropsCache(t *testing.T) {
	fetcher := &mockFetcher{categories: sampleMenu()}
	cache := &mockCache{categories: sampleMenu()[:1]}
	store := NewStore()

	sut := NewService(fetcher, cache, store)
	categories, err := sut.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, 1, fetcher.fetchCalls())
}
