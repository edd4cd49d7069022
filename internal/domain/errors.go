package domain

import (
	"errors"
	"fmt"
)

var ErrMissingCredentials = errors.New("shopify store domain and access token are not configured")
var ErrInvalidOrderID = errors.New("order id must be numeric or a gid://shopify/Order/<id> identifier")
var ErrInvalidDraftOrderID = errors.New("draft order id must be numeric or a gid://shopify/DraftOrder/<id> identifier")
var ErrMissingCustomerEmail = errors.New("customer email is required")
var ErrMissingLineItems = errors.New("at least one line item is required")
var ErrDraftOrderCompleted = errors.New("draft order has already been completed")

// UpstreamError carries the vendor response for a non-2xx call. Detail holds
// the parsed vendor error body when one was available.
type UpstreamError struct {
	API        string // "rest" or "graphql"
	StatusCode int
	Status     string
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("shopify %s request failed: %s: %s", e.API, e.Status, e.Detail)
	}
	return fmt.Sprintf("shopify %s request failed: %s", e.API, e.Status)
}

// NotFound marks an empty upstream result set. Tools surface it as a
// non-error "no results" message, distinct from failures.
type NotFound struct {
	Entity string
	Query  string
}

func (e *NotFound) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("no %s found matching %q", e.Entity, e.Query)
	}
	return fmt.Sprintf("no %s found", e.Entity)
}
