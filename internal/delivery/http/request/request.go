package request

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Pesokrava/storefront/internal/domain"
)

const maxRequestBodySize = 1 << 20 // 1MB

// DecodeJSON decodes JSON request body into the provided struct with size limit
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	limitedReader := io.LimitReader(r.Body, maxRequestBodySize)

	if err := json.NewDecoder(limitedReader).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// GetUUIDParam extracts a UUID parameter from the URL
func GetUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return uuid.Nil, fmt.Errorf("missing parameter: %s", key)
	}

	id, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid UUID: %w", err)
	}

	return id, nil
}

// GetFloatQuery extracts a finite float query parameter with a default value
func GetFloatQuery(r *http.Request, key string, defaultValue float64) (float64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return f, nil
}

// GetBoolQuery extracts a boolean query parameter, false when absent
func GetBoolQuery(r *http.Request, key string) (bool, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, value)
	}
	return b, nil
}

// GetListQuery collects a list parameter given either repeated
// (?color=a&color=b) or comma separated (?colors=a,b)
func GetListQuery(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// GetFilterSpec builds a catalog filter from query parameters, starting from
// the storefront defaults
func GetFilterSpec(r *http.Request) (domain.FilterSpec, error) {
	spec := domain.DefaultFilterSpec()

	sortKey, ok := domain.ParseSortKey(r.URL.Query().Get("sort"))
	if !ok {
		return spec, fmt.Errorf("invalid sort: %q", r.URL.Query().Get("sort"))
	}
	spec.SortKey = sortKey

	spec.Colors = GetListQuery(r, "colors")
	spec.Sizes = GetListQuery(r, "sizes")

	var err error
	if spec.PriceRange.Min, err = GetFloatQuery(r, "min_price", domain.DefaultPriceMin); err != nil {
		return spec, err
	}
	if spec.PriceRange.Max, err = GetFloatQuery(r, "max_price", domain.DefaultPriceMax); err != nil {
		return spec, err
	}
	if spec.PriceRange.Min > spec.PriceRange.Max {
		return spec, fmt.Errorf("min_price %v exceeds max_price %v", spec.PriceRange.Min, spec.PriceRange.Max)
	}

	if spec.OnlyInStock, err = GetBoolQuery(r, "in_stock"); err != nil {
		return spec, err
	}
	if spec.OnlyNew, err = GetBoolQuery(r, "new"); err != nil {
		return spec, err
	}
	if spec.OnlyLimited, err = GetBoolQuery(r, "limited"); err != nil {
		return spec, err
	}

	return spec, nil
}
