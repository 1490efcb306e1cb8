package domain

import "github.com/shopspring/decimal"

// Category groups foods on the register grid. Position drives display order.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Position  int    `json:"position"`
	Foods     []Food `json:"foods,omitempty"`
}

// Food is a sellable menu item as served by the order-management backend.
// The register only reads it; availability is flipped by cashier events.
type Food struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId"`
	Available   bool            `json:"available"`
	Ingredients []Ingredient    `json:"ingredients,omitempty"`
}

// Ingredient has no price of its own; surcharges are computed per cart line.
type Ingredient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
