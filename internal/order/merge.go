// Package order turns the cart into the submission payload for the
// order-management backend: it renders ticket notes from customizations and
// collapses lines that would print identically into single order items.
package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MySagra/mycassa-sub000/internal/domain"
	"github.com/MySagra/mycassa-sub000/internal/pricing"
)

// Catalog resolves display names for extra-ingredient ids. A nil Catalog or
// an unknown id degrades to showing the raw id on the ticket.
type Catalog interface {
	IngredientName(id string) (string, bool)
}

// IngredientNotes renders the customization of a line as ticket fragments:
// "No <name>" for removed default ingredients, "<name> x<qty>" for extra
// portions, "+<name>" / "+<qty> <name>" for added ingredients.
func IngredientNotes(line domain.CartLine, catalog Catalog) string {
	var notes []string

	for _, ing := range line.Food.Ingredients {
		switch qty := line.IngredientQty(ing.ID); {
		case qty == 0:
			notes = append(notes, "No "+ing.Name)
		case qty > 1:
			notes = append(notes, fmt.Sprintf("%s x%d", ing.Name, qty))
		}
	}

	for _, id := range sortedKeys(line.ExtraIngredients) {
		name, ok := "", false
		if catalog != nil {
			name, ok = catalog.IngredientName(id)
		}
		if !ok {
			name = id
		}
		if qty := line.ExtraIngredients[id]; qty == 1 {
			notes = append(notes, "+"+name)
		} else {
			notes = append(notes, fmt.Sprintf("+%d %s", qty, name))
		}
	}

	return strings.Join(notes, ", ")
}

// FinalNotes joins the line's free-text notes with the ingredient fragments.
func FinalNotes(line domain.CartLine, catalog Catalog) string {
	ingredientNotes := IngredientNotes(line, catalog)
	switch {
	case line.Notes != "" && ingredientNotes != "":
		return line.Notes + ", " + ingredientNotes
	case line.Notes != "":
		return line.Notes
	default:
		return ingredientNotes
	}
}

// mergeKey identifies lines that render identically on the ticket. An
// explicit struct key, so note text can never collide with a separator.
type mergeKey struct {
	foodID string
	notes  string
}

// Merge collapses cart lines into the minimal set of distinct order items,
// summing quantity and surcharge over each group. Output follows the first
// occurrence of each group in the input.
func Merge(lines []domain.CartLine, catalog Catalog) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	index := make(map[mergeKey]int, len(lines))

	for _, line := range lines {
		key := mergeKey{foodID: line.Food.ID, notes: FinalNotes(line, catalog)}
		surcharge := pricing.IngredientSurcharge(line)

		if i, ok := index[key]; ok {
			items[i].Quantity += line.Quantity
			items[i].Surcharge = items[i].Surcharge.Add(surcharge)
			continue
		}
		index[key] = len(items)
		items = append(items, domain.OrderItem{
			FoodID:    line.Food.ID,
			Quantity:  line.Quantity,
			Notes:     key.notes,
			Surcharge: surcharge,
		})
	}
	return items
}

// BuildRequest assembles the backend payload for one order. confirm is nil
// when the order is created without taking payment.
func BuildRequest(lines []domain.CartLine, catalog Catalog, table, customer string, confirm *domain.ConfirmInfo) domain.OrderRequest {
	return domain.OrderRequest{
		Table:      table,
		Customer:   customer,
		OrderItems: Merge(lines, catalog),
		Confirm:    confirm,
	}
}

func sortedKeys(m map[string]int) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
