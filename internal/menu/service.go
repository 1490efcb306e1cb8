package menu

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

// Fetcher loads the available menu from the order-management backend.
type Fetcher interface {
	FetchMenu(ctx context.Context) ([]domain.Category, error)
}

type Service struct {
	fetcher Fetcher
	cache   Cache
	store   *Store
	sfg     singleflight.Group // Prevents cache stampede
}

func NewService(fetcher Fetcher, cache Cache, store *Store) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		store:   store,
	}
}

// Load returns the menu, preferring the cache over the backend, and updates
// the in-memory snapshot the register serves from. Concurrent loads are
// collapsed into a single fetch.
func (s *Service) Load(ctx context.Context) ([]domain.Category, error) {
	v, err, _ := s.sfg.Do("menu", func() (interface{}, error) {
		categories, err := s.cache.Get(ctx)
		if err == nil {
			return categories, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("menu cache get error: %v", err) // log cache error but continue
		}

		categories, errFetch := s.fetcher.FetchMenu(ctx)
		if errFetch != nil {
			return nil, errFetch
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), categories); errSet != nil {
				log.Printf("menu cache set error: %v", errSet)
			}
		}()

		return categories, nil
	})
	if err != nil {
		return nil, err
	}

	categories := v.([]domain.Category)
	s.store.Replace(categories)
	return categories, nil
}

// Refresh drops the cached menu and loads it again from the backend.
func (s *Service) Refresh(ctx context.Context) ([]domain.Category, error) {
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("menu cache invalidate error: %v", err)
	}
	return s.Load(ctx)
}
