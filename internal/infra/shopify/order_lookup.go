package shopify

import (
	"context"
	"strconv"
	"strings"

	"github.com/machinebox/graphql"

	"shopmcp/internal/domain"
	"shopmcp/internal/infra/textutil"
)

const orderByIDQuery = `
query orderByID($id: ID!) {
  node(id: $id) {
    ... on Order {
      id
      name
      email
      createdAt
      displayFinancialStatus
      displayFulfillmentStatus
      note
      tags
      totalPriceSet {
        shopMoney {
          amount
          currencyCode
        }
      }
      customer {
        email
        firstName
        lastName
        phone
      }
      lineItems(first: 50) {
        edges {
          node {
            title
            quantity
            originalUnitPriceSet {
              shopMoney {
                amount
              }
            }
          }
        }
      }
    }
  }
}`

type gqlMoneySet struct {
	ShopMoney struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"shopMoney"`
}

type gqlOrderNode struct {
	ID                       string      `json:"id"`
	Name                     string      `json:"name"`
	Email                    string      `json:"email"`
	CreatedAt                string      `json:"createdAt"`
	DisplayFinancialStatus   string      `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string      `json:"displayFulfillmentStatus"`
	Note                     string      `json:"note"`
	Tags                     []string    `json:"tags"`
	TotalPriceSet            gqlMoneySet `json:"totalPriceSet"`
	Customer                 *struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
	} `json:"customer"`
	LineItems struct {
		Edges []struct {
			Node struct {
				Title                string      `json:"title"`
				Quantity             int         `json:"quantity"`
				OriginalUnitPriceSet gqlMoneySet `json:"originalUnitPriceSet"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

// GetOrderByID resolves one order through the GraphQL node lookup. The id may
// be numeric or a full gid. This path defaults a missing fulfillment status
// to UNFULFILLED, unlike the REST search.
func (c *Client) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	numericID, err := textutil.ExtractNumericID(id, "Order")
	if err != nil {
		return domain.Order{}, domain.ErrInvalidOrderID
	}

	req := graphql.NewRequest(orderByIDQuery)
	req.Var("id", textutil.GlobalID("Order", numericID))

	var resp struct {
		Node *gqlOrderNode `json:"node"`
	}
	if err := c.runGraphQL(ctx, req, &resp); err != nil {
		return domain.Order{}, err
	}
	if resp.Node == nil || resp.Node.ID == "" {
		return domain.Order{}, &domain.NotFound{Entity: "orders", Query: id}
	}
	return shapeGraphQLOrder(*resp.Node), nil
}

func shapeGraphQLOrder(node gqlOrderNode) domain.Order {
	fulfillment := node.DisplayFulfillmentStatus
	if fulfillment == "" {
		fulfillment = "UNFULFILLED"
	}

	items := make([]domain.LineItem, 0, len(node.LineItems.Edges))
	for _, edge := range node.LineItems.Edges {
		items = append(items, domain.LineItem{
			Title:    edge.Node.Title,
			Quantity: edge.Node.Quantity,
			Price:    edge.Node.OriginalUnitPriceSet.ShopMoney.Amount,
		})
	}

	var customer *domain.Customer
	if node.Customer != nil {
		customer = &domain.Customer{
			Email:     node.Customer.Email,
			FirstName: node.Customer.FirstName,
			LastName:  node.Customer.LastName,
			Phone:     node.Customer.Phone,
		}
	}

	var orderID int64
	if numeric, err := textutil.ExtractNumericID(node.ID, "Order"); err == nil {
		orderID, _ = strconv.ParseInt(numeric, 10, 64)
	}

	return domain.Order{
		ID:                orderID,
		Name:              node.Name,
		Email:             node.Email,
		CreatedAt:         node.CreatedAt,
		FinancialStatus:   node.DisplayFinancialStatus,
		FulfillmentStatus: fulfillment,
		TotalPrice:        node.TotalPriceSet.ShopMoney.Amount,
		Currency:          node.TotalPriceSet.ShopMoney.CurrencyCode,
		Tags:              strings.Join(node.Tags, ", "),
		Note:              node.Note,
		Customer:          customer,
		LineItems:         items,
	}
}
