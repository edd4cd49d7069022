package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopmcp/internal/domain"
)

type restDraftOrder struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	TotalPrice string `json:"total_price"`
	InvoiceURL string `json:"invoice_url"`
	OrderID    int64  `json:"order_id"`
}

// DraftOrderInput is the draft-order creation request.
type DraftOrderInput struct {
	LineItems []domain.LineItem
	Email     string
	Note      string
	Tags      string
}

func (c *Client) CreateDraftOrder(ctx context.Context, input DraftOrderInput) (domain.DraftOrder, error) {
	items := make([]restLineItem, 0, len(input.LineItems))
	for _, li := range input.LineItems {
		items = append(items, restLineItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
		})
	}

	draft := map[string]any{
		"line_items": items,
	}
	if input.Email != "" {
		draft["email"] = input.Email
	}
	if input.Note != "" {
		draft["note"] = input.Note
	}
	if input.Tags != "" {
		draft["tags"] = input.Tags
	}

	var payload struct {
		DraftOrder restDraftOrder `json:"draft_order"`
	}
	if err := c.doREST(ctx, "POST", "draft_orders.json", map[string]any{"draft_order": draft}, &payload); err != nil {
		return domain.DraftOrder{}, fmt.Errorf("create draft order: %w", err)
	}
	return shapeDraftOrder(payload.DraftOrder), nil
}

func (c *Client) ListDraftOrders(ctx context.Context, limit int) ([]domain.DraftOrder, error) {
	path := "draft_orders.json"
	if limit > 0 {
		path = fmt.Sprintf("draft_orders.json?limit=%d", limit)
	}
	var payload struct {
		DraftOrders []restDraftOrder `json:"draft_orders"`
	}
	if err := c.doREST(ctx, "GET", path, nil, &payload); err != nil {
		return nil, err
	}

	drafts := make([]domain.DraftOrder, 0, len(payload.DraftOrders))
	for _, d := range payload.DraftOrders {
		drafts = append(drafts, shapeDraftOrder(d))
	}
	return drafts, nil
}

// CompleteDraftOrder converts a draft into a real order. A vendor 422 whose
// error body names an already-completed draft is surfaced as
// domain.ErrDraftOrderCompleted so callers can tell it apart from other
// failures.
func (c *Client) CompleteDraftOrder(ctx context.Context, draftID string) (domain.DraftOrder, error) {
	var payload struct {
		DraftOrder restDraftOrder `json:"draft_order"`
	}
	path := fmt.Sprintf("draft_orders/%s/complete.json", draftID)
	err := c.doREST(ctx, "PUT", path, nil, &payload)
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == 422 &&
			strings.Contains(strings.ToLower(upstream.Detail), "already been completed") {
			return domain.DraftOrder{}, domain.ErrDraftOrderCompleted
		}
		return domain.DraftOrder{}, fmt.Errorf("complete draft order: %w", err)
	}
	return shapeDraftOrder(payload.DraftOrder), nil
}
