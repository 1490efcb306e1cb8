package domain

// CartLine is one entry of the order being built. It pairs a food with a
// quantity and an optional customization (free-text notes, per-ingredient
// quantity overrides and extra ingredients not in the food's default set).
//
// IngredientQuantities keys are always ids from Food.Ingredients; a missing
// key means the default single portion. ExtraIngredients keys are always
// disjoint from Food.Ingredients.
type CartLine struct {
	ID                   string         `json:"cartItemId"`
	Food                 Food           `json:"food"`
	Quantity             int            `json:"quantity"`
	Notes                string         `json:"notes,omitempty"`
	IngredientQuantities map[string]int `json:"ingredientQuantities,omitempty"`
	ExtraIngredients     map[string]int `json:"extraIngredients,omitempty"`
}

// IngredientQty returns the effective portion count for one of the food's
// default ingredients. Absent override means one portion, no surcharge.
func (l CartLine) IngredientQty(ingredientID string) int {
	if qty, ok := l.IngredientQuantities[ingredientID]; ok {
		return qty
	}
	return 1
}

// Customized reports whether the line carries any customization at all.
// Plain lines for the same food are merged on add; customized ones are not.
func (l CartLine) Customized() bool {
	return l.Notes != "" || len(l.IngredientQuantities) > 0 || len(l.ExtraIngredients) > 0
}
