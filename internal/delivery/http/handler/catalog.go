package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	query "github.com/Pesokrava/storefront/internal/catalog"
	"github.com/Pesokrava/storefront/internal/delivery/http/request"
	"github.com/Pesokrava/storefront/internal/delivery/http/response"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
)

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *catalog.Service, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  log,
	}
}

// RefreshResponse reports the catalog after a reload
type RefreshResponse struct {
	Products int       `json:"products"`
	LoadedAt time.Time `json:"loaded_at"`
}

// List handles GET /api/v1/products
// @Summary Query the catalog
// @Description Filter and sort products. Facets describe the unfiltered collection of the requested category.
// @Tags Catalog
// @Produce json
// @Param category query string false "Category" Enums(streetwear, drops, accessories)
// @Param colors query string false "Comma separated colors"
// @Param sizes query string false "Comma separated sizes"
// @Param min_price query number false "Minimum price (inclusive)" default(0)
// @Param max_price query number false "Maximum price (inclusive)" default(1000)
// @Param sort query string false "Sort key" Enums(name, price-asc, price-desc, rating-desc) default(name)
// @Param in_stock query bool false "Only products in stock"
// @Param new query bool false "Only new products"
// @Param limited query bool false "Only limited products"
// @Success 200 {object} map[string]interface{} "Matching products with count and facets"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 503 {object} map[string]string "Catalog not loaded"
// @Router /products [get]
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, err := request.GetFilterSpec(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	category := domain.Category(r.URL.Query().Get("category"))

	result, err := h.service.Query(category, spec)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Collection(w, query.NewViews(result.Products), len(result.Products), map[string]interface{}{
		"facets": result.Facets,
	})
}

// GetByID handles GET /api/v1/products/{id}
// @Summary Get a product by ID
// @Description Product details with discount, stock status and badges
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [get]
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, query.NewView(product))
}

// Facets handles GET /api/v1/facets
// @Summary Filter options
// @Description Colors, sizes, price bounds and stock counts of the catalog or one category
// @Tags Catalog
// @Produce json
// @Param category query string false "Category" Enums(streetwear, drops, accessories)
// @Success 200 {object} map[string]interface{} "Facets"
// @Failure 400 {object} map[string]string "Unknown category"
// @Router /facets [get]
func (h *CatalogHandler) Facets(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))

	facets, err := h.service.Facets(category)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, facets)
}

// Refresh handles POST /api/v1/catalog/refresh
// @Summary Reload the catalog
// @Description Drop the cached feed and load it again from its source
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Catalog reloaded"
// @Failure 500 {object} map[string]string "Feed could not be loaded"
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, RefreshResponse{
		Products: h.service.Count(),
		LoadedAt: h.service.LoadedAt(),
	})
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CatalogHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		response.Error(w, http.StatusServiceUnavailable, "Catalog not loaded")
	default:
		h.logger.Error("Internal error in catalog handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
