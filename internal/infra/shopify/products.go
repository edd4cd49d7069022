package shopify

import (
	"context"
	"fmt"

	"shopmcp/internal/domain"
)

type restProduct struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	BodyHTML    string             `json:"body_html"`
	Vendor      string             `json:"vendor"`
	ProductType string             `json:"product_type"`
	Status      string             `json:"status"`
	Tags        string             `json:"tags"`
	Variants    []restVariant      `json:"variants"`
	Images      []restProductImage `json:"images"`
}

type restVariant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int64  `json:"inventory_quantity"`
}

type restProductImage struct {
	Src string `json:"src"`
}

const productPageLimit = 250

// ListProducts fetches the full product listing. Callers wanting the cached
// view go through the tool layer, which owns the read-through cache.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var payload struct {
		Products []restProduct `json:"products"`
	}
	path := fmt.Sprintf("products.json?limit=%d", productPageLimit)
	if err := c.doREST(ctx, "GET", path, nil, &payload); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, shapeProduct(p))
	}
	return products, nil
}
