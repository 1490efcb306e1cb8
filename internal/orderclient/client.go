// Package orderclient talks to the remote order-management backend. The
// backend is authoritative for menu content, order persistence, ticket
// numbering and printing; this client only shuttles JSON.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

// TokenSource supplies the bearer token for backend calls. The register's
// auth/session plumbing lives outside this package.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed API token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func New(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "order-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("%s circuit breaker: %s -> %s", name, from, to)
		},
	})
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		breaker:    breaker,
	}
}

// FetchMenu returns the available categories with their foods.
func (c *Client) FetchMenu(ctx context.Context) ([]domain.Category, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/categories?available=true&include=foods", nil)
	if err != nil {
		return nil, err
	}
	var categories []domain.Category
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// TodayOrders returns the same-day order board, confirmed orders excluded.
func (c *Client) TodayOrders(ctx context.Context) ([]domain.DailyOrder, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/orders/day/today?exclude=confirmed", nil)
	if err != nil {
		return nil, err
	}
	var orders []domain.DailyOrder
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode today orders: %w", err)
	}
	return orders, nil
}

// OrderByCode loads an order by its display code for reloading into the
// register.
func (c *Client) OrderByCode(ctx context.Context, displayCode string) (domain.OrderResponse, error) {
	path := "/v1/orders/" + strings.ToUpper(displayCode)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	var order domain.OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return domain.OrderResponse{}, fmt.Errorf("decode order: %w", err)
	}
	return order, nil
}

// CreateOrder submits a merged order, optionally confirming payment in the
// same call.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/v1/orders", req)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	var order domain.OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return domain.OrderResponse{}, fmt.Errorf("decode order: %w", err)
	}
	return order, nil
}

// ConfirmOrder confirms payment for an already created order.
func (c *Client) ConfirmOrder(ctx context.Context, orderID int64, confirm domain.ConfirmInfo, items []domain.OrderItem) error {
	payload := struct {
		domain.ConfirmInfo
		OrderItems []domain.OrderItem `json:"orderItems"`
	}{ConfirmInfo: confirm, OrderItems: items}

	path := fmt.Sprintf("/v1/orders/%d/confirm", orderID)
	_, err := c.do(ctx, http.MethodPost, path, payload)
	return err
}

// do runs one JSON round trip through the circuit breaker. Backend error
// bodies carry a "message" field which is surfaced to the caller.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("marshal request: %w", err)
			}
			reqBody = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("backend request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, backendError(resp.StatusCode, body)
		}
		return body, nil
	})
}

func backendError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("backend returned %d: %s", status, payload.Message)
	}
	return fmt.Errorf("backend returned %d", status)
}
