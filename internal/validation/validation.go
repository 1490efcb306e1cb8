// Package validation holds the field rules gating order submission. All
// messages are user-facing and returned as values, never panics; the
// register UI is Italian, so the messages are too.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MsgCartEmpty        = "Il carrello è vuoto"
	MsgCustomerRequired = "Inserisci il nome del cliente"
	MsgCustomerTooShort = "Il nome del cliente deve contenere almeno 2 caratteri"
	MsgTableRequired    = "Inserisci il numero del tavolo"

	msgAmountInvalid    = "Importo non valido (solo numeri, max 2 decimali)"
	msgDiscountInvalid  = "Importo sconto non valido (solo numeri, max 2 decimali)"
	msgAmountNegative   = "L'importo deve essere maggiore o uguale a 0"
	msgDiscountNegative = "Lo sconto deve essere maggiore o uguale a 0"
	msgAmountTooLarge   = "L'importo massimo è 9999.99"
)

// Digits, then at most two fraction digits behind a comma or a dot.
var amountPattern = regexp.MustCompile(`^[0-9]+([.,][0-9]{0,2})?$`)

var maxAmount = decimal.RequireFromString("9999.99")

var (
	ErrCustomerRequired = errors.New(MsgCustomerRequired)
	ErrCustomerTooShort = errors.New(MsgCustomerTooShort)
	ErrTableRequired    = errors.New(MsgTableRequired)
)

// CustomerName checks the customer field on its own: empty and too-short
// names fail with distinct messages.
func CustomerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrCustomerRequired
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return ErrCustomerTooShort
	}
	return nil
}

// Table checks the table field. The rule only exists when table input is
// enabled in the register settings; disabled means the table never blocks.
func Table(table string, enabled bool) error {
	if enabled && strings.TrimSpace(table) == "" {
		return ErrTableRequired
	}
	return nil
}

// ParseAmount parses a cash amount typed at the register. Comma and dot are
// both accepted as decimal separator, at most two fraction digits, range
// [0, 9999.99].
func ParseAmount(s string) (decimal.Decimal, error) {
	return parseAmount(s, msgAmountInvalid, msgAmountNegative)
}

// ParseDiscount is ParseAmount with the discount-specific messages.
func ParseDiscount(s string) (decimal.Decimal, error) {
	return parseAmount(s, msgDiscountInvalid, msgDiscountNegative)
}

func parseAmount(s, invalidMsg, negativeMsg string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, errors.New(invalidMsg)
	}
	value, err := decimal.NewFromString(strings.TrimSuffix(strings.ReplaceAll(s, ",", "."), "."))
	if err != nil {
		return decimal.Zero, errors.New(invalidMsg)
	}
	if value.IsNegative() {
		return decimal.Zero, errors.New(negativeMsg)
	}
	if value.GreaterThan(maxAmount) {
		return decimal.Zero, errors.New(msgAmountTooLarge)
	}
	return value, nil
}

// SubmitReadiness aggregates everything blocking the order button, in the
// order the UI lists them: empty cart, customer problems, missing table.
// Returns nil when the order can be submitted.
func SubmitReadiness(cartLen int, customer, table string, tableInputEnabled bool) []string {
	var problems []string

	if cartLen == 0 {
		problems = append(problems, MsgCartEmpty)
	}
	if err := CustomerName(customer); err != nil {
		problems = append(problems, err.Error())
	}
	if err := Table(table, tableInputEnabled); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}
