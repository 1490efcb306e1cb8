package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

type mapCatalog map[string]string

func (m mapCatalog) IngredientName(id string) (string, bool) {
	name, ok := m[id]
	return name, ok
}

func pizza() domain.Food {
	return domain.Food{
		ID:        "pizza",
		Name:      "Pizza",
		Price:     decimal.RequireFromString("8.00"),
		Available: true,
		Ingredients: []domain.Ingredient{
			{ID: "cheese", Name: "Formaggio"},
			{ID: "ham", Name: "Prosciutto"},
		},
	}
}

func TestIngredientNotes(t *testing.T) {
	line := domain.CartLine{
		Food:     pizza(),
		Quantity: 1,
		IngredientQuantities: map[string]int{
			"cheese": 0,
			"ham":    3,
		},
	}

	assert.Equal(t, "No Formaggio, Prosciutto x3", IngredientNotes(line, nil))
}

func TestIngredientNotes_DefaultQuantitiesSilent(t *testing.T) {
	line := domain.CartLine{Food: pizza(), Quantity: 2}
	assert.Empty(t, IngredientNotes(line, nil))

	line.IngredientQuantities = map[string]int{"cheese": 1}
	assert.Empty(t, IngredientNotes(line, nil))
}

func TestIngredientNotes_Extras(t *testing.T) {
	line := domain.CartLine{
		Food:     pizza(),
		Quantity: 1,
		ExtraIngredients: map[string]int{
			"mushrooms": 1,
			"olives":    2,
		},
	}
	catalog := mapCatalog{"mushrooms": "Funghi", "olives": "Olive"}

	assert.Equal(t, "+Funghi, +2 Olive", IngredientNotes(line, catalog))
}

func TestIngredientNotes_CatalogFallbackToRawID(t *testing.T) {
	line := domain.CartLine{
		Food:             pizza(),
		Quantity:         1,
		ExtraIngredients: map[string]int{"mushrooms": 1},
	}

	assert.Equal(t, "+mushrooms", IngredientNotes(line, nil))
	assert.Equal(t, "+mushrooms", IngredientNotes(line, mapCatalog{}))
}

func TestFinalNotes_JoinsFreeTextAndIngredients(t *testing.T) {
	line := domain.CartLine{
		Food:                 pizza(),
		Quantity:             1,
		Notes:                "ben cotta",
		IngredientQuantities: map[string]int{"cheese": 2},
	}

	assert.Equal(t, "ben cotta, Formaggio x2", FinalNotes(line, nil))

	line.IngredientQuantities = nil
	assert.Equal(t, "ben cotta", FinalNotes(line, nil))

	line.Notes = ""
	assert.Empty(t, FinalNotes(line, nil))
}

func TestMerge_PlainLinesCollapse(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Food: pizza(), Quantity: 2},
		{ID: "b", Food: pizza(), Quantity: 3},
	}

	items := Merge(lines, nil)
	require.Len(t, items, 1)
	assert.Equal(t, "pizza", items[0].FoodID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Empty(t, items[0].Notes)
	assert.True(t, items[0].Surcharge.IsZero())
}

func TestMerge_DistinctNotesStaySeparate(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Food: pizza(), Quantity: 1},
		{ID: "b", Food: pizza(), Quantity: 1, Notes: "senza sale"},
	}

	items := Merge(lines, nil)
	require.Len(t, items, 2)
}

func TestMerge_SameRenderedNotesCombineSurcharges(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Food: pizza(), Quantity: 2, IngredientQuantities: map[string]int{"cheese": 2}},
		{ID: "b", Food: pizza(), Quantity: 1, IngredientQuantities: map[string]int{"cheese": 2}},
	}

	items := Merge(lines, nil)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Formaggio x2", items[0].Notes)
	// 2*0.50 + 1*0.50
	assert.True(t, decimal.RequireFromString("1.50").Equal(items[0].Surcharge))
}

func TestMerge_QuantityConserved(t *testing.T) {
	fries := domain.Food{ID: "fries", Name: "Patatine", Price: decimal.New(250, -2)}
	lines := []domain.CartLine{
		{ID: "a", Food: pizza(), Quantity: 2},
		{ID: "b", Food: pizza(), Quantity: 1, Notes: "x"},
		{ID: "c", Food: fries, Quantity: 4},
		{ID: "d", Food: pizza(), Quantity: 3},
	}

	items := Merge(lines, nil)

	want := 0
	for _, line := range lines {
		want += line.Quantity
	}
	got := 0
	for _, item := range items {
		got += item.Quantity
	}
	assert.Equal(t, want, got)
}

func TestMerge_IdempotentOnContent(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Food: pizza(), Quantity: 2, Notes: "ben cotta"},
		{ID: "b", Food: pizza(), Quantity: 1, Notes: "ben cotta"},
	}

	first := Merge(lines, nil)
	require.Len(t, first, 1)

	// Rebuild single-quantity lines matching the merged output and merge
	// again: totals must not change.
	rebuilt := make([]domain.CartLine, 0, first[0].Quantity)
	for i := 0; i < first[0].Quantity; i++ {
		rebuilt = append(rebuilt, domain.CartLine{
			Food:     pizza(),
			Quantity: 1,
			Notes:    "ben cotta",
		})
	}
	second := Merge(rebuilt, nil)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Quantity, second[0].Quantity)
	assert.Equal(t, first[0].Notes, second[0].Notes)
}

func TestMerge_NoteSeparatorCannotCollideAcrossFoods(t *testing.T) {
	other := pizza()
	other.ID = "pizza, Formaggio x2"

	lines := []domain.CartLine{
		{ID: "a", Food: pizza(), Quantity: 1, IngredientQuantities: map[string]int{"cheese": 2}},
		{ID: "b", Food: other, Quantity: 1},
	}

	items := Merge(lines, nil)
	assert.Len(t, items, 2)
}

func TestBuildRequest(t *testing.T) {
	lines := []domain.CartLine{{ID: "a", Food: pizza(), Quantity: 2}}
	confirm := &domain.ConfirmInfo{
		PaymentMethod: domain.PaymentCash,
		Discount:      decimal.RequireFromString("1.00"),
		Surcharge:     decimal.Zero,
	}

	req := BuildRequest(lines, nil, "12", "Mario", confirm)
	assert.Equal(t, "12", req.Table)
	assert.Equal(t, "Mario", req.Customer)
	require.Len(t, req.OrderItems, 1)
	require.NotNil(t, req.Confirm)
	assert.Equal(t, domain.PaymentCash, req.Confirm.PaymentMethod)
}
