package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"shopmcp/internal/domain"
)

// productsCacheKey is the single fixed key for the cached full listing. The
// title filter is applied after the cached fetch, so repeated calls within
// the TTL issue at most one upstream request regardless of filter.
const productsCacheKey = "products:all"

type getProductsInput struct {
	SearchTitle string `json:"searchTitle"`
	Limit       int    `json:"limit"`
}

func (r *Registry) getProductsTool() toolDef {
	return toolDef{
		name:        "get-products",
		description: "List products in the store, optionally filtered by title. Results are served from a short-lived cache.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"searchTitle": {
					Type:        "string",
					Description: "Case-insensitive substring match on the product title",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of products to return",
				},
			},
		},
		handler: r.handleGetProducts,
	}
}

func (r *Registry) handleGetProducts(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input getProductsInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	products, err := r.cachedProducts(ctx)
	if err != nil {
		return "", nil, err
	}

	if input.SearchTitle != "" {
		needle := strings.ToLower(input.SearchTitle)
		filtered := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Title), needle) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	if input.Limit > 0 && len(products) > input.Limit {
		products = products[:input.Limit]
	}

	if len(products) == 0 {
		return "", nil, &domain.NotFound{Entity: "products", Query: input.SearchTitle}
	}

	summary := fmt.Sprintf("Found %d products", len(products))
	if input.SearchTitle != "" {
		summary = fmt.Sprintf("Found %d products matching %q", len(products), input.SearchTitle)
	}
	return summary, map[string]any{"products": products}, nil
}

// cachedProducts is the read-through path: serve the listing from the cache
// while it is fresh, otherwise fetch, store, and serve.
func (r *Registry) cachedProducts(ctx context.Context) ([]domain.Product, error) {
	if raw, ok := r.deps.Cache.Get(productsCacheKey); ok {
		r.deps.Metrics.ObserveCache(true)
		var products []domain.Product
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
		// A corrupt entry falls through to a refetch.
	}
	r.deps.Metrics.ObserveCache(false)

	products, err := r.deps.Client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(products); err == nil {
		r.deps.Cache.Set(productsCacheKey, raw)
	}
	return products, nil
}
