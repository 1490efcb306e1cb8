package menu

import (
	"sync"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

// Store holds the current menu snapshot served to the register. Cashier
// events flip availability in place; a flip never touches cart lines that
// were added while the food was still available.
type Store struct {
	mu          sync.RWMutex
	categories  []domain.Category
	foods       map[string]*domain.Food
	ingredients map[string]string
}

func NewStore() *Store {
	return &Store{
		foods:       make(map[string]*domain.Food),
		ingredients: make(map[string]string),
	}
}

// Replace swaps in a freshly loaded menu. The store keeps its own copy so
// later availability flips never write into slices the caller still holds.
func (s *Store) Replace(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = cloneCategories(categories)
	s.foods = make(map[string]*domain.Food)
	s.ingredients = make(map[string]string)
	for i := range s.categories {
		for j := range s.categories[i].Foods {
			food := &s.categories[i].Foods[j]
			s.foods[food.ID] = food
			for _, ing := range food.Ingredients {
				s.ingredients[ing.ID] = ing.Name
			}
		}
	}
}

// Categories returns a copy of the snapshot in backend order. The copy is
// detached from the store, so encoding it needs no lock and a concurrent
// availability flip cannot race with the read.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneCategories(s.categories)
}

// Food returns a copy of the food with the given id.
func (s *Store) Food(id string) (domain.Food, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	food, ok := s.foods[id]
	if !ok {
		return domain.Food{}, false
	}
	return *food, true
}

// SetAvailability flips a food's availability flag. Reports whether the
// food is known to the current snapshot.
func (s *Store) SetAvailability(foodID string, available bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, ok := s.foods[foodID]
	if !ok {
		return false
	}
	food.Available = available
	return true
}

// cloneCategories copies the category slice and each nested Foods slice.
// Ingredient slices stay shared; nothing mutates them after a Replace.
func cloneCategories(categories []domain.Category) []domain.Category {
	out := make([]domain.Category, len(categories))
	copy(out, categories)
	for i := range out {
		foods := make([]domain.Food, len(out[i].Foods))
		copy(foods, out[i].Foods)
		out[i].Foods = foods
	}
	return out
}

// IngredientName resolves an ingredient id to its display name. Satisfies
// the order package's Catalog for extra-ingredient notes.
func (s *Store) IngredientName(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.ingredients[id]
	return name, ok
}
