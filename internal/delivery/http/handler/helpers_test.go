package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/usecase/catalog"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func ptr(v float64) *float64 { return &v }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "str-001", Name: "CYBER HOODIE GHOST", Price: 299, OriginalPrice: ptr(399), Rating: 4.8, Colors: []string{"Black", "Dark Purple"}, Sizes: []string{"S", "M", "L"}, Category: domain.CategoryStreetwear, IsNew: true, IsBestseller: true, Stock: 45},
		{ID: "str-002", Name: "ANARCHY TEE DISTORTED", Price: 99.99, Rating: 4.6, Colors: []string{"Black", "White"}, Sizes: []string{"S", "M"}, Category: domain.CategoryStreetwear, Stock: 120},
		{ID: "drop-002", Name: "VOID BOMBER JACKET", Price: 899, Rating: 5, Colors: []string{"Black"}, Sizes: []string{"M", "L"}, Category: domain.CategoryDrops, IsLimited: true, Stock: 0},
		{ID: "acc-001", Name: "NEON CHAIN NECKLACE", Price: 149, Rating: 4.7, Colors: []string{"Silver"}, Sizes: []string{"One Size"}, Category: domain.CategoryAccessories, Stock: 8},
	}
}

func newCatalogService(t *testing.T) *catalog.Service {
	repo := new(MockProductRepository)
	repo.On("ListAll", mock.Anything).Return(testProducts(), nil)

	svc := catalog.NewService(repo, nil, language.English, logger.Nop())
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
