// Package pricing computes the monetary figures of an order in progress.
// All functions are pure; amounts are decimal with 2 fraction digits so that
// summing many lines never drifts by a cent.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

// UnitSurcharge is charged for each ingredient portion beyond the first.
var UnitSurcharge = decimal.New(50, -2) // 0.50

// IngredientSurcharge returns the total surcharge of a line: 0.50 per extra
// portion of a default ingredient, times the line quantity. Ingredients at
// quantity 0 or 1 contribute nothing. Extra ingredients are rendered in the
// ticket notes but do not enter the amount (pinned current behavior, see
// DESIGN.md).
func IngredientSurcharge(line domain.CartLine) decimal.Decimal {
	perUnit := decimal.Zero
	for _, ing := range line.Food.Ingredients {
		qty := line.IngredientQty(ing.ID)
		if qty > 1 {
			perUnit = perUnit.Add(UnitSurcharge.Mul(decimal.NewFromInt(int64(qty - 1))))
		}
	}
	return perUnit.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
}

// LineTotal is unit price times quantity plus the line's surcharge.
func LineTotal(line domain.CartLine) decimal.Decimal {
	base := line.Food.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
	return base.Add(IngredientSurcharge(line)).Round(2)
}

// Subtotal sums LineTotal over all lines, surcharges included.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line))
	}
	return total.Round(2)
}

// TotalSurcharges sums IngredientSurcharge over all lines.
func TotalSurcharges(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(IngredientSurcharge(line))
	}
	return total.Round(2)
}

// Total applies a fixed-amount discount to the subtotal. The result never
// goes below zero however large the discount.
func Total(lines []domain.CartLine, discount decimal.Decimal) decimal.Decimal {
	total := Subtotal(lines).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// Change is what the customer gets back. A negative result means the paid
// amount does not cover the total; the register displays it but does not
// refuse the order.
func Change(total, paid decimal.Decimal) decimal.Decimal {
	return paid.Sub(total).Round(2)
}
