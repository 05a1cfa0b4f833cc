package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/domain"
)

func TestGetFilterSpec_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

	spec, err := GetFilterSpec(req)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFilterSpec(), spec)
}

func TestGetFilterSpec_AllParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?colors=Black,%20Dark%20Purple&sizes=M&sizes=L&min_price=50&max_price=300.5&sort=price-high&in_stock=true&new=1&limited=false", nil)

	spec, err := GetFilterSpec(req)

	require.NoError(t, err)
	assert.Equal(t, []string{"Black", "Dark Purple"}, spec.Colors)
	assert.Equal(t, []string{"M", "L"}, spec.Sizes)
	assert.Equal(t, domain.PriceRange{Min: 50, Max: 300.5}, spec.PriceRange)
	assert.Equal(t, domain.SortByPriceDesc, spec.SortKey)
	assert.True(t, spec.OnlyInStock)
	assert.True(t, spec.OnlyNew)
	assert.False(t, spec.OnlyLimited)
}

func TestGetFilterSpec_Invalid(t *testing.T) {
	tests := []string{
		"sort=popularity",
		"min_price=cheap",
		"min_price=NaN",
		"max_price=nan",
		"max_price=Inf",
		"min_price=-Inf",
		"max_price=%2BInfinity",
		"min_price=500&max_price=100",
		"in_stock=maybe",
	}

	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products?"+query, nil)

			_, err := GetFilterSpec(req)

			assert.Error(t, err)
		})
	}
}

func TestGetFloatQuery(t *testing.T) {
	tests := []struct {
		query   string
		want    float64
		wantErr bool
	}{
		{"", 7, false},
		{"price=12.5", 12.5, false},
		{"price=1e2", 100, false},
		{"price=NaN", 0, true},
		{"price=inf", 0, true},
		{"price=-Infinity", 0, true},
		{"price=1e400", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			got, err := GetFloatQuery(req, "price", 7)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetUUIDParam(t *testing.T) {
	id := uuid.New()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("sessionID", id.String())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := GetUUIDParam(req, "sessionID")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = GetUUIDParam(req, "missing")
	assert.Error(t, err)
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		ProductID string `json:"product_id"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"str-001"}`))
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "str-001", body.ProductID)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &body))
}
