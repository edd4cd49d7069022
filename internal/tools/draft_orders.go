package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	"shopmcp/internal/domain"
	"shopmcp/internal/infra/shopify"
	"shopmcp/internal/infra/textutil"
)

func (r *Registry) createDraftOrderTool() toolDef {
	return toolDef{
		name:        "create-draft-order",
		description: "Create a draft order that can be edited or cancelled before completion.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"lineItems": {
					Type: "array",
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
				"email": {Type: "string"},
				"note":  {Type: "string"},
				"tags":  {Type: "string"},
			},
			Required: []string{"lineItems"},
		},
		handler: r.handleCreateDraftOrder,
	}
}

func (r *Registry) handleCreateDraftOrder(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input struct {
		LineItems []domain.LineItem `json:"lineItems"`
		Email     string            `json:"email"`
		Note      string            `json:"note"`
		Tags      string            `json:"tags"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}
	if len(input.LineItems) == 0 {
		return "", nil, domain.ErrMissingLineItems
	}

	draft, err := r.deps.Client.CreateDraftOrder(ctx, shopify.DraftOrderInput{
		LineItems: input.LineItems,
		Email:     input.Email,
		Note:      input.Note,
		Tags:      input.Tags,
	})
	if err != nil {
		return "", nil, err
	}

	summary := fmt.Sprintf("Created draft order %s (%s)", draft.Name, draft.Status)
	return summary, map[string]any{"draftOrder": draft}, nil
}

func (r *Registry) listDraftOrdersTool() toolDef {
	return toolDef{
		name:        "list-draft-orders",
		description: "List draft orders in the store.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"limit": {
					Type:        "integer",
					Description: "Maximum number of draft orders to return",
				},
			},
		},
		handler: r.handleListDraftOrders,
	}
}

func (r *Registry) handleListDraftOrders(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input struct {
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	drafts, err := r.deps.Client.ListDraftOrders(ctx, input.Limit)
	if err != nil {
		return "", nil, err
	}
	if len(drafts) == 0 {
		return "", nil, &domain.NotFound{Entity: "draft orders"}
	}

	return fmt.Sprintf("Found %d draft orders", len(drafts)), map[string]any{"draftOrders": drafts}, nil
}

func (r *Registry) completeDraftOrderTool() toolDef {
	return toolDef{
		name:        "complete-draft-order",
		description: "Complete a draft order into a real order, optionally tagging the resulting order.",
		schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"draftOrderId": {
					Type:        "string",
					Description: "Numeric draft order ID or gid://shopify/DraftOrder/<id>",
				},
				"tags": {
					Type:        "string",
					Description: "Comma-separated tags to apply to the completed order",
				},
			},
			Required: []string{"draftOrderId"},
		},
		handler: r.handleCompleteDraftOrder,
	}
}

func (r *Registry) handleCompleteDraftOrder(ctx context.Context, args json.RawMessage) (string, any, error) {
	var input struct {
		DraftOrderID string `json:"draftOrderId"`
		Tags         string `json:"tags"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", nil, fmt.Errorf("decode arguments: %w", err)
	}

	draftID, err := textutil.ExtractNumericID(input.DraftOrderID, "DraftOrder")
	if err != nil {
		return "", nil, domain.ErrInvalidDraftOrderID
	}

	draft, err := r.deps.Client.CompleteDraftOrder(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftOrderCompleted) {
			return "", nil, fmt.Errorf("draft order %s: %w", draftID, domain.ErrDraftOrderCompleted)
		}
		return "", nil, err
	}

	summary := fmt.Sprintf("Completed draft order %s into order %d", draft.Name, draft.OrderID)

	// Tagging runs as an independent second step against the materialized
	// order. Completion already happened, so a tagging failure is reported
	// as partial success instead of unwinding anything.
	if input.Tags != "" && draft.OrderID != 0 {
		tags := input.Tags
		_, err := r.deps.Client.UpdateOrder(ctx, strconv.FormatInt(draft.OrderID, 10), shopify.OrderUpdate{
			Tags: &tags,
		})
		if err != nil {
			summary = fmt.Sprintf("%s, but tagging the order failed: %v", summary, err)
		} else {
			summary = fmt.Sprintf("%s and tagged it %q", summary, input.Tags)
		}
	}

	return summary, map[string]any{"draftOrder": draft}, nil
}
