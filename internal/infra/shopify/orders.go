package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"shopmcp/internal/domain"
)

type restOrder struct {
	ID                int64               `json:"id"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	CreatedAt         string              `json:"created_at"`
	FinancialStatus   string              `json:"financial_status"`
	FulfillmentStatus string              `json:"fulfillment_status"`
	TotalPrice        string              `json:"total_price"`
	Currency          string              `json:"currency"`
	Tags              string              `json:"tags"`
	Note              string              `json:"note"`
	Customer          *restCustomer       `json:"customer"`
	LineItems         []restLineItem      `json:"line_items"`
	NoteAttributes    []restNoteAttribute `json:"note_attributes"`
}

type restLineItem struct {
	VariantID int64  `json:"variant_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price,omitempty"`
}

type restNoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OrderSearch narrows the order listing. Zero values mean "no constraint".
type OrderSearch struct {
	Status  string
	Email   string
	SinceID string
	Limit   int
}

// SearchOrders queries the order listing endpoint. An empty result is
// returned as an empty slice, never as an error.
func (c *Client) SearchOrders(ctx context.Context, search OrderSearch) ([]domain.Order, error) {
	query := url.Values{}
	status := search.Status
	if status == "" {
		status = "any"
	}
	query.Set("status", status)
	if search.Email != "" {
		query.Set("email", search.Email)
	}
	if search.SinceID != "" {
		query.Set("since_id", search.SinceID)
	}
	if search.Limit > 0 {
		query.Set("limit", strconv.Itoa(search.Limit))
	}

	var payload struct {
		Orders []restOrder `json:"orders"`
	}
	if err := c.doREST(ctx, "GET", "orders.json?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(payload.Orders))
	for _, o := range payload.Orders {
		orders = append(orders, shapeOrder(o))
	}
	return orders, nil
}

// GetOrderREST fetches one order by its numeric ID, note attributes included.
// update-order uses this to merge note attributes before writing back.
func (c *Client) GetOrderREST(ctx context.Context, orderID string) (domain.Order, error) {
	var payload struct {
		Order restOrder `json:"order"`
	}
	if err := c.doREST(ctx, "GET", fmt.Sprintf("orders/%s.json", orderID), nil, &payload); err != nil {
		return domain.Order{}, err
	}
	return shapeOrder(payload.Order), nil
}

// OrderInput is the order-creation request assembled by the create-order tool.
type OrderInput struct {
	CustomerID      int64
	Email           string
	LineItems       []domain.LineItem
	Note            string
	Tags            string
	NoteAttributes  []domain.NoteAttribute
	ShippingAddress *domain.Address
}

func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (domain.Order, error) {
	items := make([]restLineItem, 0, len(input.LineItems))
	for _, li := range input.LineItems {
		items = append(items, restLineItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
		})
	}

	order := map[string]any{
		"line_items": items,
	}
	if input.CustomerID != 0 {
		order["customer"] = map[string]any{"id": input.CustomerID}
	}
	if input.Email != "" {
		order["email"] = input.Email
	}
	if input.Note != "" {
		order["note"] = input.Note
	}
	if input.Tags != "" {
		order["tags"] = input.Tags
	}
	if len(input.NoteAttributes) > 0 {
		order["note_attributes"] = toRestNoteAttributes(input.NoteAttributes)
	}
	if input.ShippingAddress != nil {
		order["shipping_address"] = map[string]any{
			"address1": input.ShippingAddress.Address1,
			"address2": input.ShippingAddress.Address2,
			"city":     input.ShippingAddress.City,
			"province": input.ShippingAddress.Province,
			"country":  input.ShippingAddress.Country,
			"zip":      input.ShippingAddress.Zip,
		}
	}

	var payload struct {
		Order restOrder `json:"order"`
	}
	if err := c.doREST(ctx, "POST", "orders.json", map[string]any{"order": order}, &payload); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return shapeOrder(payload.Order), nil
}

// OrderUpdate carries the mutable order fields. Nil pointers leave the
// vendor-side value untouched; NoteAttributes replaces the full set, so the
// caller merges beforehand.
type OrderUpdate struct {
	Note           *string
	Tags           *string
	Email          *string
	NoteAttributes []domain.NoteAttribute
}

func (c *Client) UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) (domain.Order, error) {
	order := map[string]any{"id": orderID}
	if update.Note != nil {
		order["note"] = *update.Note
	}
	if update.Tags != nil {
		order["tags"] = *update.Tags
	}
	if update.Email != nil {
		order["email"] = *update.Email
	}
	if update.NoteAttributes != nil {
		order["note_attributes"] = toRestNoteAttributes(update.NoteAttributes)
	}

	var payload struct {
		Order restOrder `json:"order"`
	}
	path := fmt.Sprintf("orders/%s.json", orderID)
	if err := c.doREST(ctx, "PUT", path, map[string]any{"order": order}, &payload); err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}
	return shapeOrder(payload.Order), nil
}

func toRestNoteAttributes(attrs []domain.NoteAttribute) []restNoteAttribute {
	out := make([]restNoteAttribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, restNoteAttribute{Name: a.Name, Value: a.Value})
	}
	return out
}
