package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

// OrderItem is one merged line of the submission payload. Lines that render
// identically on the kitchen ticket are collapsed into a single item with
// summed quantity and surcharge.
type OrderItem struct {
	FoodID    string          `json:"foodId"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// ConfirmInfo asks the backend to confirm (take payment for) the order in
// the same call that creates it.
type ConfirmInfo struct {
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Discount      decimal.Decimal `json:"discount"`
	Surcharge     decimal.Decimal `json:"surcharge"`
}

// OrderRequest is the payload for POST /v1/orders on the backend.
type OrderRequest struct {
	Table      string       `json:"table"`
	Customer   string       `json:"customer"`
	OrderItems []OrderItem  `json:"orderItems"`
	Confirm    *ConfirmInfo `json:"confirm,omitempty"`
}

type OrderResponse struct {
	ID          string          `json:"id"`
	DisplayCode string          `json:"displayCode"`
	Table       string          `json:"table"`
	Customer    string          `json:"customer"`
	SubTotal    decimal.Decimal `json:"subTotal"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DailyOrder is a row of the same-day order board.
type DailyOrder struct {
	ID          int64           `json:"id"`
	DisplayCode string          `json:"displayCode"`
	Table       string          `json:"table"`
	Customer    string          `json:"customer"`
	SubTotal    decimal.Decimal `json:"subTotal"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}
