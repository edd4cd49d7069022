package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"shopmcp/internal/domain"
	"shopmcp/internal/infra/shopify"
	"shopmcp/internal/infra/textutil"
)

func (r *Registry) getOrderByIDTool() toolDef {
	return toolDef{
		name:        "get-order-by-id",
		description: "Fetch a single order by numeric ID or gid://shopify/Order identifier.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"orderId": {
					Type:        "string",
					Description: "Numeric order ID or gid://shopify/Order/<id>",
				},
			},
			Required: []string{"orderId"},
		},
		handler: r.handleGetOrderByID,
	}
}

func (r *Registry) handleGetOrderByID(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	order, err := r.deps.Client.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return "", nil, err
	}

	summary := fmt.Sprintf("Order %s: %s %s, %s", order.Name, order.TotalPrice, order.Currency, order.FinancialStatus)
	return summary, map[string]any{"order": order}, nil
}

func (r *Registry) searchOrdersTool() toolDef {
	return toolDef{
		name:        "search-orders",
		description: "Search orders by status, customer email, or pagination cursor.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"status": {
					Type:        "string",
					Description: "Order status filter: open, closed, cancelled, or any",
					Enum:        []any{"open", "closed", "cancelled", "any"},
				},
				"email": {
					Type:        "string",
					Description: "Restrict to orders placed by this customer email",
				},
				"sinceId": {
					Type:        "string",
					Description: "Only return orders with an ID greater than this",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of orders to return",
				},
			},
		},
		handler: r.handleSearchOrders,
	}
}

func (r *Registry) handleSearchOrders(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input struct {
		Status  string `json:"status"`
		Email   string `json:"email"`
		SinceID string `json:"sinceId"`
		Limit   int    `json:"limit"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	orders, err := r.deps.Client.SearchOrders(ctx, shopify.OrderSearch{
		Status:  input.Status,
		Email:   input.Email,
		SinceID: input.SinceID,
		Limit:   input.Limit,
	})
	if err != nil {
		return "", nil, err
	}
	if len(orders) == 0 {
		return "", nil, &domain.NotFound{Entity: "orders", Query: input.Email}
	}

	return fmt.Sprintf("Found %d orders", len(orders)), map[string]any{"orders": orders}, nil
}

type createOrderCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type createOrderInput struct {
	LineItems []domain.LineItem   `json:"lineItems"`
	Customer  createOrderCustomer `json:"customer"`
	Note      string              `json:"note"`
	Tags      string              `json:"tags"`
	Shipping  *domain.Address     `json:"shippingAddress"`
}

func (r *Registry) createOrderTool() toolDef {
	return toolDef{
		name:        "create-order",
		description: "Create an order for a customer, creating the customer record first when none exists for the email.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"lineItems": {
					Type:        "array",
					Description: "Items to order",
					Items: &jsonschema.Schema{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"variantId": {Type: "integer"},
							"title":     {Type: "string"},
							"quantity":  {Type: "integer"},
							"price":     {Type: "string"},
						},
						Required: []string{"quantity"},
					},
				},
				"customer": {
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"email":     {Type: "string"},
						"firstName": {Type: "string"},
						"lastName":  {Type: "string"},
						"phone":     {Type: "string"},
					},
				},
				"note":            {Type: "string"},
				"tags":            {Type: "string"},
				"shippingAddress": {Type: "object"},
			},
			Required: []string{"lineItems", "customer"},
		},
		handler: r.handleCreateOrder,
	}
}

func (r *Registry) handleCreateOrder(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input createOrderInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	// Input checks come before any upstream call.
	if len(input.LineItems) == 0 {
		return "", nil, domain.ErrMissingLineItems
	}
	if input.Customer.Email == "" {
		return "", nil, domain.ErrMissingCustomerEmail
	}
	phone := textutil.NormalizePhone(input.Customer.Phone)

	customer, err := r.deps.Client.FindOrCreateCustomer(ctx, domain.Customer{
		Email:     input.Customer.Email,
		FirstName: input.Customer.FirstName,
		LastName:  input.Customer.LastName,
		Phone:     phone,
	})
	if err != nil {
		return "", nil, fmt.Errorf("resolve customer: %w", err)
	}

	// Contact fields ride along as note attributes; the vendor order model
	// does not hold them natively.
	attrs := []domain.NoteAttribute{}
	if phone != "" {
		attrs = append(attrs, domain.NoteAttribute{Name: "contact_phone", Value: phone})
	}
	if name := fullName(input.Customer.FirstName, input.Customer.LastName); name != "" {
		attrs = append(attrs, domain.NoteAttribute{Name: "contact_name", Value: name})
	}

	order, err := r.deps.Client.CreateOrder(ctx, shopify.OrderInput{
		CustomerID:      customer.ID,
		Email:           customer.Email,
		LineItems:       input.LineItems,
		Note:            input.Note,
		Tags:            input.Tags,
		NoteAttributes:  attrs,
		ShippingAddress: input.Shipping,
	})
	if err != nil {
		// The two steps are not atomic: the resolved customer stays in
		// place when order creation fails.
		return "", nil, fmt.Errorf("order creation failed (customer %d was resolved and kept): %w", customer.ID, err)
	}

	summary := fmt.Sprintf("Created order %s for %s (%s %s)", order.Name, customer.Email, order.TotalPrice, order.Currency)
	return summary, map[string]any{"order": order}, nil
}

func fullName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

type updateOrderInput struct {
	OrderID        string                 `json:"orderId"`
	Note           *string                `json:"note"`
	Tags           *string                `json:"tags"`
	Email          *string                `json:"email"`
	NoteAttributes []domain.NoteAttribute `json:"noteAttributes"`
}

func (r *Registry) updateOrderTool() toolDef {
	return toolDef{
		name:        "update-order",
		description: "Update an order's note, tags, email, or note attributes. Incoming note attributes are merged over the existing set by name.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"orderId": {
					Type:        "string",
					Description: "Numeric order ID or gid://shopify/Order/<id>",
				},
				"note":  {Type: "string"},
				"tags":  {Type: "string"},
				"email": {Type: "string"},
				"noteAttributes": {
					Type: "array",
					Items: &jsonschema.Schema{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"name":  {Type: "string"},
							"value": {Type: "string"},
						},
						Required: []string{"name", "value"},
					},
				},
			},
			Required: []string{"orderId"},
		},
		handler: r.handleUpdateOrder,
	}
}

func (r *Registry) handleUpdateOrder(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input updateOrderInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	orderID, err := textutil.ExtractNumericID(input.OrderID, "Order")
	if err != nil {
		return "", nil, domain.ErrInvalidOrderID
	}

	update := shopify.OrderUpdate{
		Note:  input.Note,
		Tags:  input.Tags,
		Email: input.Email,
	}

	if len(input.NoteAttributes) > 0 {
		existing, err := r.deps.Client.GetOrderREST(ctx, orderID)
		if err != nil {
			return "", nil, fmt.Errorf("load order for note attribute merge: %w", err)
		}
		update.NoteAttributes = MergeNoteAttributes(existing.NoteAttributes, input.NoteAttributes)
	}

	order, err := r.deps.Client.UpdateOrder(ctx, orderID, update)
	if err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("Updated order %s", order.Name), map[string]any{"order": order}, nil
}

// MergeNoteAttributes overlays incoming attributes on the existing set.
// Existing names keep their position, incoming values win on conflict, and
// new names are appended in input order.
func MergeNoteAttributes(existing, incoming []domain.NoteAttribute) []domain.NoteAttribute {
	merged := make([]domain.NoteAttribute, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, attr := range merged {
		index[attr.Name] = i
	}

	for _, attr := range incoming {
		if i, ok := index[attr.Name]; ok {
			merged[i].Value = attr.Value
			continue
		}
		index[attr.Name] = len(merged)
		merged = append(merged, attr)
	}
	return merged
}
