package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmcp/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Options{
		StoreDomain: server.URL,
		AccessToken: "shpat_test",
		APIVersion:  "2024-10",
		HTTPClient:  server.Client(),
	})
	return client, server
}

func TestListProductsShapesResponse(t *testing.T) {
	var gotPath string
	var gotToken string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		_, _ = w.Write([]byte(`{"products":[
			{"id":1,"title":"Tee","body_html":"<p>Soft <b>cotton</b> tee</p>","vendor":"Acme",
			 "variants":[{"id":11,"title":"S","price":"19.00","sku":"TEE-S","inventory_quantity":3}],
			 "images":[{"src":"https://cdn.example/tee.png"}]},
			{"id":2,"title":"Mug","body_html":"` + longHTML() + `","variants":[]}
		]}`))
	}))

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "/admin/api/2024-10/products.json", gotPath)
	assert.Equal(t, "shpat_test", gotToken)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Soft cotton tee", products[0].Description)
	assert.Equal(t, "https://cdn.example/tee.png", products[0].ImageURL)
	require.Len(t, products[0].Variants, 1)
	assert.Equal(t, "19.00", products[0].Variants[0].Price)

	// 250 a's stripped of markup, truncated to 200 runes plus ellipsis.
	assert.Len(t, products[1].Description, 203)
	assert.NotContains(t, products[1].Description, "<")
}

func longHTML() string {
	body := "<div>"
	for range 250 {
		body += "a"
	}
	return body + "</div>"
}

func TestRESTErrorCarriesVendorDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"email":["is invalid"]}}`))
	}))

	_, err := client.CreateCustomer(context.Background(), domain.Customer{Email: "bad"})
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 422, upstream.StatusCode)
	assert.Contains(t, upstream.Detail, "email: is invalid")
}

func TestRESTMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response body")
}

func TestSearchOrdersEmptyResultIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "any", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"orders":[]}`))
	}))

	orders, err := client.SearchOrders(context.Background(), OrderSearch{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSearchOrdersLeavesFulfillmentStatusEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders":[{"id":7,"name":"#1007","fulfillment_status":null,"total_price":"10.00"}]}`))
	}))

	orders, err := client.SearchOrders(context.Background(), OrderSearch{Status: "open"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].FulfillmentStatus)
}

func TestFindOrCreateCustomerFindsExisting(t *testing.T) {
	var creates atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			creates.Add(1)
		}
		_, _ = w.Write([]byte(`{"customers":[{"id":42,"email":"jane@example.com","first_name":"Jane"}]}`))
	}))

	customer, err := client.FindOrCreateCustomer(context.Background(), domain.Customer{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), customer.ID)
	assert.Zero(t, creates.Load())
}

func TestFindOrCreateCustomerCreatesOnMiss(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"customers":[]}`))
			return
		}
		var body struct {
			Customer map[string]any `json:"customer"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body.Customer["email"])
		_, _ = w.Write([]byte(`{"customer":{"id":43,"email":"jane@example.com"}}`))
	}))

	customer, err := client.FindOrCreateCustomer(context.Background(), domain.Customer{Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(43), customer.ID)
}

func TestCompleteDraftOrderAlreadyCompleted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"base":["This draft order has already been completed"]}}`))
	}))

	_, err := client.CompleteDraftOrder(context.Background(), "99")
	require.ErrorIs(t, err, domain.ErrDraftOrderCompleted)
}

func TestCompleteDraftOrderOtherFailureIsGeneric(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
	}))

	_, err := client.CompleteDraftOrder(context.Background(), "99")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrDraftOrderCompleted)
}

func TestGetOrderByIDRejectsMalformedIDWithoutUpstreamCall(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := client.GetOrderByID(context.Background(), "gid://shopify/Order/12ab")
	require.ErrorIs(t, err, domain.ErrInvalidOrderID)
	assert.Zero(t, calls.Load())
}

func TestGetOrderByIDDefaultsFulfillmentStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/graphql.json", r.URL.Path)
		var body struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gid://shopify/Order/450789469", body.Variables["id"])

		_, _ = w.Write([]byte(`{"data":{"node":{
			"id":"gid://shopify/Order/450789469",
			"name":"#1001",
			"displayFinancialStatus":"PAID",
			"displayFulfillmentStatus":"",
			"tags":["vip","rush"],
			"totalPriceSet":{"shopMoney":{"amount":"55.00","currencyCode":"USD"}},
			"lineItems":{"edges":[{"node":{"title":"Tee","quantity":2,
				"originalUnitPriceSet":{"shopMoney":{"amount":"19.00"}}}}]}
		}}}`))
	}))

	order, err := client.GetOrderByID(context.Background(), "450789469")
	require.NoError(t, err)
	assert.Equal(t, int64(450789469), order.ID)
	assert.Equal(t, "UNFULFILLED", order.FulfillmentStatus)
	assert.Equal(t, "vip, rush", order.Tags)
	assert.Equal(t, "55.00", order.TotalPrice)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 2, order.LineItems[0].Quantity)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"node":null}}`))
	}))

	_, err := client.GetOrderByID(context.Background(), "450789469")
	var notFound *domain.NotFound
	require.ErrorAs(t, err, &notFound)
}

func TestVendorErrorDetailShapes(t *testing.T) {
	assert.Equal(t, "Not Found", vendorErrorDetail([]byte(`{"errors":"Not Found"}`)))
	assert.Equal(t, "a; b", vendorErrorDetail([]byte(`{"errors":["a","b"]}`)))
	assert.Equal(t, "base: already done", vendorErrorDetail([]byte(`{"errors":{"base":["already done"]}}`)))
	assert.Empty(t, vendorErrorDetail([]byte(`not json`)))
	assert.Empty(t, vendorErrorDetail([]byte(`{}`)))
}
