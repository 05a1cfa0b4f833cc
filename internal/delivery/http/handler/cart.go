package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront/internal/cart"
	"github.com/Pesokrava/storefront/internal/delivery/http/request"
	"github.com/Pesokrava/storefront/internal/delivery/http/response"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/pkg/validator"
	cartusecase "github.com/Pesokrava/storefront/internal/usecase/cart"
)

// CartHandler handles HTTP requests for shopper carts
type CartHandler struct {
	service *cartusecase.Service
	logger  *logger.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *cartusecase.Service, log *logger.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  log,
	}
}

// CreateCartResponse is returned when a session is started
type CreateCartResponse struct {
	SessionID uuid.UUID     `json:"session_id"`
	Cart      cart.Snapshot `json:"cart"`
}

// ItemRequest identifies a cart line by product variant
type ItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

func (req ItemRequest) key() domain.LineKey {
	return domain.LineKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
}

// UpdateQuantityRequest sets the quantity of a cart line
type UpdateQuantityRequest struct {
	ItemRequest
	Quantity *int `json:"quantity" validate:"required"`
}

// Create handles POST /api/v1/carts
// @Summary Start a cart session
// @Tags Cart
// @Produce json
// @Success 201 {object} map[string]interface{} "Session id and empty cart"
// @Router /carts [post]
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, snap := h.service.CreateSession()

	response.Created(w, CreateCartResponse{SessionID: id, Cart: snap})
}

// Get handles GET /api/v1/carts/{sessionID}
// @Summary Get a cart
// @Description Lines with subtotals, totals and selection totals
// @Tags Cart
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} map[string]interface{} "Cart"
// @Failure 400 {object} map[string]string "Invalid session ID"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID} [get]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Get(sessionID)
	h.respond(w, snap, err)
}

// AddItem handles POST /api/v1/carts/{sessionID}/items
// @Summary Add a product variant
// @Description Adds one unit; an existing line for the same variant is incremented
// @Tags Cart
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Param item body ItemRequest true "Product variant"
// @Success 200 {object} map[string]interface{} "Updated cart"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Session or product not found"
// @Failure 409 {object} map[string]string "Product out of stock"
// @Router /carts/{sessionID}/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, err := h.service.AddItem(r.Context(), sessionID, req.key())
	h.respond(w, snap, err)
}

// UpdateQuantity handles PUT /api/v1/carts/{sessionID}/items
// @Summary Set a line quantity
// @Description A quantity of zero or less removes the line; unknown lines are ignored
// @Tags Cart
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Param item body UpdateQuantityRequest true "Line and quantity"
// @Success 200 {object} map[string]interface{} "Updated cart"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID}/items [put]
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, err := h.service.UpdateQuantity(r.Context(), sessionID, req.key(), *req.Quantity)
	h.respond(w, snap, err)
}

// RemoveItem handles DELETE /api/v1/carts/{sessionID}/items
// @Summary Remove a line
// @Tags Cart
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Param product_id query string true "Product ID"
// @Param size query string true "Size"
// @Param color query string true "Color"
// @Success 200 {object} map[string]interface{} "Updated cart"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID}/items [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := ItemRequest{ProductID: q.Get("product_id"), Size: q.Get("size"), Color: q.Get("color")}

	snap, err := h.service.RemoveItem(r.Context(), sessionID, req.key())
	h.respond(w, snap, err)
}

// Clear handles DELETE /api/v1/carts/{sessionID}
// @Summary Empty a cart
// @Tags Cart
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} map[string]interface{} "Empty cart"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID} [delete]
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Clear(r.Context(), sessionID)
	h.respond(w, snap, err)
}

// Open handles POST /api/v1/carts/{sessionID}/open
// @Summary Show the cart panel
// @Tags Cart
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} map[string]interface{} "Cart"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID}/open [post]
func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Open(sessionID)
	h.respond(w, snap, err)
}

// Close handles POST /api/v1/carts/{sessionID}/close
// @Summary Hide the cart panel
// @Tags Cart
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} map[string]interface{} "Cart"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID}/close [post]
func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Close(sessionID)
	h.respond(w, snap, err)
}

// ToggleSelection handles POST /api/v1/carts/{sessionID}/selection
// @Summary Toggle line selection
// @Tags Cart
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID (UUID)"
// @Param item body ItemRequest true "Line to toggle"
// @Success 200 {object} map[string]interface{} "Updated cart"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Cart session not found"
// @Router /carts/{sessionID}/selection [post]
func (h *CartHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, err := h.service.ToggleSelection(sessionID, req.key())
	h.respond(w, snap, err)
}

func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := request.GetUUIDParam(r, "sessionID")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *CartHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := request.DecodeJSON(r, v); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validator.Struct(v); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *CartHandler) respond(w http.ResponseWriter, snap cart.Snapshot, err error) {
	if err != nil {
		h.handleError(w, err)
		return
	}
	response.Success(w, snap)
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CartHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "Cart session not found")
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrOutOfStock):
		response.Error(w, http.StatusConflict, "Product out of stock")
	case errors.Is(err, domain.ErrCatalogUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "Catalog not loaded")
	default:
		h.logger.Error("Internal error in cart handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
