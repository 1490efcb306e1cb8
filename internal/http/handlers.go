package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MySagra/mycassa-sub000/internal/cart"
	"github.com/MySagra/mycassa-sub000/internal/daily"
	"github.com/MySagra/mycassa-sub000/internal/domain"
	"github.com/MySagra/mycassa-sub000/internal/menu"
	"github.com/MySagra/mycassa-sub000/internal/order"
	"github.com/MySagra/mycassa-sub000/internal/pricing"
	"github.com/MySagra/mycassa-sub000/internal/settings"
	"github.com/MySagra/mycassa-sub000/internal/validation"
)

// MenuLoader is the menu service surface the handlers need.
type MenuLoader interface {
	Load(ctx context.Context) ([]domain.Category, error)
	Refresh(ctx context.Context) ([]domain.Category, error)
}

// OrderBackend is the slice of the backend client used at submit time.
type OrderBackend interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResponse, error)
	TodayOrders(ctx context.Context) ([]domain.DailyOrder, error)
}

type Handler struct {
	sessions *SessionStore
	menu     MenuLoader
	store    *menu.Store
	settings settings.Store
	backend  OrderBackend
	board    *daily.Board
	timeout  time.Duration
}

func NewHandler(sessions *SessionStore, menuLoader MenuLoader, store *menu.Store, settingsStore settings.Store, backend OrderBackend, board *daily.Board, timeout time.Duration) *Handler {
	return &Handler{
		sessions: sessions,
		menu:     menuLoader,
		store:    store,
		settings: settingsStore,
		backend:  backend,
		board:    board,
		timeout:  timeout,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Delete("/sessions/{sessionID}", h.DeleteSession)

	r.Get("/menu", h.GetMenu)
	r.Post("/menu/refresh", h.RefreshMenu)

	r.Get("/sessions/{sessionID}/cart", h.GetCart)
	r.Post("/sessions/{sessionID}/cart/items", h.AddItem)
	r.Patch("/sessions/{sessionID}/cart/lines/{lineID}", h.UpdateQuantity)
	r.Put("/sessions/{sessionID}/cart/lines/{lineID}/customization", h.ApplyCustomization)
	r.Delete("/sessions/{sessionID}/cart/lines/{lineID}", h.RemoveLine)
	r.Delete("/sessions/{sessionID}/cart", h.ClearCart)

	r.Put("/sessions/{sessionID}/details", h.UpdateDetails)
	r.Get("/sessions/{sessionID}/readiness", h.GetReadiness)
	r.Post("/sessions/{sessionID}/order", h.SubmitOrder)

	r.Get("/orders/today", h.GetTodayOrders)

	r.Get("/settings/table-input", h.GetTableInput)
	r.Put("/settings/table-input", h.SetTableInput)
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()
	respondJSON(w, http.StatusCreated, sessionResponse{SessionID: session.ID})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.menu.Load(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "menu_unavailable", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) RefreshMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.menu.Refresh(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "menu_unavailable", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

type lineDTO struct {
	ID                   string          `json:"cart_item_id"`
	FoodID               string          `json:"food_id"`
	FoodName             string          `json:"food_name"`
	Quantity             int             `json:"quantity"`
	Notes                string          `json:"notes,omitempty"`
	IngredientQuantities map[string]int  `json:"ingredient_quantities,omitempty"`
	ExtraIngredients     map[string]int  `json:"extra_ingredients,omitempty"`
	Surcharge            decimal.Decimal `json:"surcharge"`
	Total                decimal.Decimal `json:"total"`
}

type cartResponse struct {
	Lines      []lineDTO       `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Surcharges decimal.Decimal `json:"surcharges"`
	Total      decimal.Decimal `json:"total"`
}

func cartToResponse(lines []domain.CartLine) cartResponse {
	resp := cartResponse{
		Lines:      make([]lineDTO, 0, len(lines)),
		Subtotal:   pricing.Subtotal(lines),
		Surcharges: pricing.TotalSurcharges(lines),
		Total:      pricing.Total(lines, decimal.Zero),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, lineDTO{
			ID:                   line.ID,
			FoodID:               line.Food.ID,
			FoodName:             line.Food.Name,
			Quantity:             line.Quantity,
			Notes:                line.Notes,
			IngredientQuantities: line.IngredientQuantities,
			ExtraIngredients:     line.ExtraIngredients,
			Surcharge:            pricing.IngredientSurcharge(line),
			Total:                pricing.LineTotal(line),
		})
	}
	return resp
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	session, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session_not_found", "unknown register session")
		return nil, false
	}
	return session, true
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.lock()
	lines := session.Cart.Lines()
	session.unlock()

	respondJSON(w, http.StatusOK, cartToResponse(lines))
}

type addItemRequest struct {
	FoodID string `json:"food_id"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.FoodID == "" {
		respondError(w, http.StatusBadRequest, "invalid_food_id", "food_id is required")
		return
	}

	food, ok := h.store.Food(req.FoodID)
	if !ok {
		respondError(w, http.StatusNotFound, "food_not_found", "unknown food")
		return
	}

	session.lock()
	_, err := session.Cart.AddItem(food)
	lines := session.Cart.Lines()
	session.unlock()

	if errors.Is(err, cart.ErrUnavailable) {
		respondError(w, http.StatusConflict, "food_unavailable", "food is not available")
		return
	}

	respondJSON(w, http.StatusCreated, cartToResponse(lines))
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must be non-zero")
		return
	}

	session.lock()
	err := session.Cart.UpdateQuantity(chi.URLParam(r, "lineID"), req.Delta)
	lines := session.Cart.Lines()
	session.unlock()

	if errors.Is(err, cart.ErrLineNotFound) {
		respondError(w, http.StatusNotFound, "line_not_found", "unknown cart line")
		return
	}

	respondJSON(w, http.StatusOK, cartToResponse(lines))
}

type customizationRequest struct {
	Count                int            `json:"count"`
	Notes                string         `json:"notes"`
	IngredientQuantities map[string]int `json:"ingredient_quantities"`
	ExtraIngredients     map[string]int `json:"extra_ingredients"`
}

func (h *Handler) ApplyCustomization(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req customizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session.lock()
	_, err := session.Cart.ApplyCustomization(
		chi.URLParam(r, "lineID"), req.Count, req.Notes, req.IngredientQuantities, req.ExtraIngredients)
	lines := session.Cart.Lines()
	session.unlock()

	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "line_not_found", "unknown cart line")
		return
	case errors.Is(err, cart.ErrNothingSelected):
		respondError(w, http.StatusBadRequest, "invalid_count", "count must be at least 1")
		return
	}

	respondJSON(w, http.StatusOK, cartToResponse(lines))
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.lock()
	err := session.Cart.Remove(chi.URLParam(r, "lineID"))
	lines := session.Cart.Lines()
	session.unlock()

	if errors.Is(err, cart.ErrLineNotFound) {
		respondError(w, http.StatusNotFound, "line_not_found", "unknown cart line")
		return
	}

	respondJSON(w, http.StatusOK, cartToResponse(lines))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	session.lock()
	session.reset()
	session.unlock()

	respondJSON(w, http.StatusOK, cartToResponse(nil))
}

type detailsRequest struct {
	Customer      string `json:"customer"`
	Table         string `json:"table"`
	PaymentMethod string `json:"payment_method"`
}

func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if req.PaymentMethod != "" && method != domain.PaymentCash && method != domain.PaymentCard {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be CASH or CARD")
		return
	}

	session.lock()
	session.Customer = req.Customer
	session.Table = req.Table
	if req.PaymentMethod != "" {
		session.PaymentMethod = method
	}
	session.unlock()

	w.WriteHeader(http.StatusNoContent)
}

type readinessResponse struct {
	Ready    bool     `json:"ready"`
	Problems []string `json:"problems,omitempty"`
}

func (h *Handler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	tableEnabled := h.tableInputEnabled(ctx)

	session.lock()
	problems := validation.SubmitReadiness(session.Cart.Len(), session.Customer, session.Table, tableEnabled)
	session.unlock()

	respondJSON(w, http.StatusOK, readinessResponse{
		Ready:    problems == nil,
		Problems: problems,
	})
}

type submitRequest struct {
	Discount   string `json:"discount"`
	PaidAmount string `json:"paid_amount"`
	ConfirmNow bool   `json:"confirm_now"`
}

type submitResponse struct {
	Order  domain.OrderResponse `json:"order"`
	Total  decimal.Decimal      `json:"total"`
	Change *decimal.Decimal     `json:"change,omitempty"`
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	discount := decimal.Zero
	if req.Discount != "" {
		parsed, err := validation.ParseDiscount(req.Discount)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_discount", err.Error())
			return
		}
		discount = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	tableEnabled := h.tableInputEnabled(ctx)

	session.lock()
	defer session.unlock()

	problems := validation.SubmitReadiness(session.Cart.Len(), session.Customer, session.Table, tableEnabled)
	if problems != nil {
		respondProblems(w, problems)
		return
	}

	lines := session.Cart.Lines()
	total := pricing.Total(lines, discount)

	// Negative change is displayed, never blocked.
	var change *decimal.Decimal
	if session.PaymentMethod == domain.PaymentCash && req.PaidAmount != "" {
		paid, err := validation.ParseAmount(req.PaidAmount)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_paid_amount", err.Error())
			return
		}
		c := pricing.Change(total, paid)
		change = &c
	}

	var confirm *domain.ConfirmInfo
	if req.ConfirmNow {
		confirm = &domain.ConfirmInfo{
			PaymentMethod: session.PaymentMethod,
			Discount:      discount,
			Surcharge:     pricing.TotalSurcharges(lines),
		}
	}

	orderReq := order.BuildRequest(lines, h.store, session.Table, session.Customer, confirm)
	resp, err := h.backend.CreateOrder(ctx, orderReq)
	if err != nil {
		respondError(w, http.StatusBadGateway, "order_submit_failed", err.Error())
		return
	}

	session.reset()
	respondJSON(w, http.StatusCreated, submitResponse{
		Order:  resp,
		Total:  total,
		Change: change,
	})
}

func (h *Handler) GetTodayOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if h.board.Len() == 0 {
		orders, err := h.backend.TodayOrders(ctx)
		if err != nil {
			respondError(w, http.StatusBadGateway, "orders_unavailable", err.Error())
			return
		}
		h.board.Replace(orders)
	}

	respondJSON(w, http.StatusOK, h.board.Snapshot())
}

type tableInputResponse struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) GetTableInput(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, tableInputResponse{Enabled: h.tableInputEnabled(ctx)})
}

func (h *Handler) SetTableInput(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req tableInputResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := h.settings.SetTableInputEnabled(ctx, req.Enabled); err != nil {
		respondError(w, http.StatusInternalServerError, "settings_error", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, req)
}

// tableInputEnabled falls back to requiring the table when the settings
// store cannot be reached.
func (h *Handler) tableInputEnabled(ctx context.Context) bool {
	enabled, err := h.settings.TableInputEnabled(ctx)
	if err != nil {
		log.Printf("settings read error (request %s): %v", getRequestID(ctx), err)
		return true
	}
	return enabled
}
