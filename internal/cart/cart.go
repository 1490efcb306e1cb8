// Package cart holds the order being built at the register. One Cart is
// owned by one register session; operations are synchronous and never
// perform I/O.
package cart

import (
	"errors"

	"github.com/google/uuid"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

var (
	ErrUnavailable     = errors.New("food is not available")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrNothingSelected = errors.New("customization applies to zero units")
)

// IDGenerator mints line ids. Ids are unique for the session's lifetime and
// never reused; tests inject a sequential generator for determinism.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

type Cart struct {
	ids   IDGenerator
	lines []domain.CartLine
}

func New(ids IDGenerator) *Cart {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Cart{ids: ids}
}

// AddItem puts one unit of food into the cart. A plain line (no notes, no
// customization) for the same food is incremented instead of duplicated.
// Unavailable foods are rejected; lines already in the cart are unaffected
// by later availability changes.
func (c *Cart) AddItem(food domain.Food) (string, error) {
	if !food.Available {
		return "", ErrUnavailable
	}
	for i := range c.lines {
		line := &c.lines[i]
		if line.Food.ID == food.ID && !line.Customized() {
			line.Quantity++
			return line.ID, nil
		}
	}
	line := domain.CartLine{ID: c.ids.NewID(), Food: food, Quantity: 1}
	c.lines = append(c.lines, line)
	return line.ID, nil
}

// UpdateQuantity adds delta (may be negative) to a line's quantity. A line
// that reaches zero is removed; no zero-quantity line ever stays in the cart.
func (c *Cart) UpdateQuantity(lineID string, delta int) error {
	for i := range c.lines {
		if c.lines[i].ID != lineID {
			continue
		}
		if c.lines[i].Quantity+delta <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity += delta
		}
		return nil
	}
	return ErrLineNotFound
}

// Remove drops a line unconditionally.
func (c *Cart) Remove(lineID string) error {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// ApplyCustomization gives count units of a line a new customization. When
// count is less than the line's quantity the line splits: the remainder
// keeps its id and prior customization, and a fresh line carries the new
// one. count greater than the quantity is clamped; the whole line is then
// rewritten in place. Returns the id of the customized line.
func (c *Cart) ApplyCustomization(lineID string, count int, notes string, ingredientQuantities, extraIngredients map[string]int) (string, error) {
	if count <= 0 {
		return "", ErrNothingSelected
	}
	for i := range c.lines {
		if c.lines[i].ID != lineID {
			continue
		}
		line := c.lines[i]
		if count > line.Quantity {
			count = line.Quantity
		}
		customized := domain.CartLine{
			ID:                   c.ids.NewID(),
			Food:                 line.Food,
			Quantity:             count,
			Notes:                notes,
			IngredientQuantities: normalizeOverrides(line.Food, ingredientQuantities),
			ExtraIngredients:     normalizeExtras(line.Food, extraIngredients),
		}
		if count == line.Quantity {
			c.lines[i] = customized
		} else {
			c.lines[i].Quantity = line.Quantity - count
			c.lines = append(c.lines, customized)
		}
		return customized.ID, nil
	}
	return "", ErrLineNotFound
}

// Clear empties the cart for a new order.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a snapshot of the cart in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// normalizeOverrides keeps only overrides that actually deviate from the
// default portion and belong to the food's ingredient set, so a line edited
// back to all defaults is indistinguishable from an untouched one.
func normalizeOverrides(food domain.Food, overrides map[string]int) map[string]int {
	if len(overrides) == 0 {
		return nil
	}
	out := make(map[string]int)
	for _, ing := range food.Ingredients {
		if qty, ok := overrides[ing.ID]; ok && qty != 1 {
			if qty < 0 {
				qty = 0
			}
			out[ing.ID] = qty
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeExtras drops non-positive quantities and ids that are already
// part of the food's default ingredients.
func normalizeExtras(food domain.Food, extras map[string]int) map[string]int {
	if len(extras) == 0 {
		return nil
	}
	defaults := make(map[string]bool, len(food.Ingredients))
	for _, ing := range food.Ingredients {
		defaults[ing.ID] = true
	}
	out := make(map[string]int)
	for id, qty := range extras {
		if qty > 0 && !defaults[id] {
			out[id] = qty
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
