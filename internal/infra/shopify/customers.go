package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"shopmcp/internal/domain"
)

type restCustomer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func shapeCustomer(c restCustomer) domain.Customer {
	return domain.Customer{
		ID:        c.ID,
		Email:     c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
	}
}

// FindCustomerByEmail looks a customer up by exact email. A missing customer
// is reported as *domain.NotFound, not as a failure.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (domain.Customer, error) {
	var payload struct {
		Customers []restCustomer `json:"customers"`
	}
	path := "customers/search.json?query=" + url.QueryEscape("email:"+email)
	if err := c.doREST(ctx, "GET", path, nil, &payload); err != nil {
		return domain.Customer{}, err
	}
	if len(payload.Customers) == 0 {
		return domain.Customer{}, &domain.NotFound{Entity: "customers", Query: email}
	}
	return shapeCustomer(payload.Customers[0]), nil
}

// CreateCustomer registers a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	body := map[string]any{
		"customer": map[string]any{
			"email":      customer.Email,
			"first_name": customer.FirstName,
			"last_name":  customer.LastName,
			"phone":      customer.Phone,
		},
	}
	var payload struct {
		Customer restCustomer `json:"customer"`
	}
	if err := c.doREST(ctx, "POST", "customers.json", body, &payload); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return shapeCustomer(payload.Customer), nil
}

// FindOrCreateCustomer resolves the customer for an order. The two steps are
// independent upstream calls with no transactional guarantee: a later order
// creation failure leaves a created customer in place.
func (c *Client) FindOrCreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	found, err := c.FindCustomerByEmail(ctx, customer.Email)
	if err == nil {
		return found, nil
	}
	var notFound *domain.NotFound
	if !errors.As(err, &notFound) {
		return domain.Customer{}, err
	}
	return c.CreateCustomer(ctx, customer)
}
