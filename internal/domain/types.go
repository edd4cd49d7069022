package domain

// Output contracts returned by tools. These are stable projections of the
// vendor payloads; anything the vendor owns but the tools do not surface is
// dropped at the mapping layer.

// Product is the shaped product listing entry. Description is HTML-stripped
// and truncated before it reaches this struct.
type Product struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Vendor      string           `json:"vendor,omitempty"`
	ProductType string           `json:"productType,omitempty"`
	Status      string           `json:"status,omitempty"`
	Tags        string           `json:"tags,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Variants    []ProductVariant `json:"variants"`
}

type ProductVariant struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	SKU               string `json:"sku,omitempty"`
	InventoryQuantity int64  `json:"inventoryQuantity"`
}

type Customer struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type Address struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Zip      string `json:"zip,omitempty"`
}

type LineItem struct {
	VariantID int64  `json:"variantId,omitempty"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price,omitempty"`
}

// NoteAttribute is a key/value annotation on an order. The tools use these to
// carry customer contact fields the vendor order model does not hold natively.
type NoteAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Order is the shaped order contract. FulfillmentStatus defaulting differs by
// lookup path: the GraphQL single-order lookup substitutes "UNFULFILLED" when
// the vendor omits it, while the REST search leaves it empty. Both behaviors
// are load-bearing for existing callers and must not be unified.
type Order struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name,omitempty"`
	Email             string          `json:"email,omitempty"`
	CreatedAt         string          `json:"createdAt,omitempty"`
	FinancialStatus   string          `json:"financialStatus,omitempty"`
	FulfillmentStatus string          `json:"fulfillmentStatus,omitempty"`
	TotalPrice        string          `json:"totalPrice,omitempty"`
	Currency          string          `json:"currency,omitempty"`
	Tags              string          `json:"tags,omitempty"`
	Note              string          `json:"note,omitempty"`
	Customer          *Customer       `json:"customer,omitempty"`
	LineItems         []LineItem      `json:"lineItems"`
	NoteAttributes    []NoteAttribute `json:"noteAttributes,omitempty"`
}

type DraftOrder struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status"`
	TotalPrice string `json:"totalPrice,omitempty"`
	InvoiceURL string `json:"invoiceUrl,omitempty"`
	// OrderID is set once the draft has been completed into a real order.
	OrderID int64 `json:"orderId,omitempty"`
}
