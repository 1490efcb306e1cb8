package orderclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

func TestFetchMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/categories", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("available"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Pizze","available":true,"position":1,"foods":[
				{"id":"pizza","name":"Pizza","price":8,"categoryId":1,"available":true,
				 "ingredients":[{"id":"cheese","name":"Formaggio"}]}
			]}
		]`))
	}))
	t.Cleanup(srv.Close)

	sut := New(srv.URL, StaticToken("secret"), srv.Client())
	categories, err := sut.FetchMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Foods, 1)
	assert.Equal(t, "pizza", categories[0].Foods[0].ID)
	assert.True(t, decimal.NewFromInt(8).Equal(categories[0].Foods[0].Price))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Mario", req["customer"])
		assert.Contains(t, req, "confirm")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ord-1","displayCode":"A12","table":"4","customer":"Mario","subTotal":"16.00","status":"PENDING"}`))
	}))
	t.Cleanup(srv.Close)

	sut := New(srv.URL, StaticToken("secret"), srv.Client())
	resp, err := sut.CreateOrder(context.Background(), domain.OrderRequest{
		Table:    "4",
		Customer: "Mario",
		OrderItems: []domain.OrderItem{
			{FoodID: "pizza", Quantity: 2, Surcharge: decimal.Zero},
		},
		Confirm: &domain.ConfirmInfo{
			PaymentMethod: domain.PaymentCash,
			Discount:      decimal.Zero,
			Surcharge:     decimal.Zero,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "A12", resp.DisplayCode)
	assert.True(t, decimal.RequireFromString("16.00").Equal(resp.SubTotal))
}

func TestBackendErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Tavolo non valido"}`))
	}))
	t.Cleanup(srv.Close)

	sut := New(srv.URL, StaticToken("secret"), srv.Client())
	_, err := sut.CreateOrder(context.Background(), domain.OrderRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tavolo non valido")
	assert.Contains(t, err.Error(), "422")
}

func TestOrderByCode_UppercasesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/A12", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"ord-1","displayCode":"A12","customer":"Mario"}`))
	}))
	t.Cleanup(srv.Close)

	sut := New(srv.URL, StaticToken("secret"), srv.Client())
	order, err := sut.OrderByCode(context.Background(), "a12")
	require.NoError(t, err)
	assert.Equal(t, "Mario", order.Customer)
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	sut := New(srv.URL, StaticToken("secret"), srv.Client())
	for i := 0; i < 5; i++ {
		_, err := sut.TodayOrders(context.Background())
		require.Error(t, err)
	}

	// Sixth call is rejected without reaching the backend.
	_, err := sut.TodayOrders(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}
