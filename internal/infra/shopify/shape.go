package shopify

import (
	"shopmcp/internal/domain"
	"shopmcp/internal/infra/textutil"
)

const descriptionLimit = 200

func shapeProduct(p restProduct) domain.Product {
	variants := make([]domain.ProductVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, domain.ProductVariant{
			ID:                v.ID,
			Title:             v.Title,
			Price:             v.Price,
			SKU:               v.SKU,
			InventoryQuantity: v.InventoryQuantity,
		})
	}

	var image string
	if len(p.Images) > 0 {
		image = p.Images[0].Src
	}

	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: textutil.Truncate(textutil.StripHTML(p.BodyHTML), descriptionLimit),
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Status:      p.Status,
		Tags:        p.Tags,
		ImageURL:    image,
		Variants:    variants,
	}
}

func shapeOrder(o restOrder) domain.Order {
	items := make([]domain.LineItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, domain.LineItem{
			VariantID: li.VariantID,
			Title:     li.Title,
			Quantity:  li.Quantity,
			Price:     li.Price,
		})
	}

	attrs := make([]domain.NoteAttribute, 0, len(o.NoteAttributes))
	for _, na := range o.NoteAttributes {
		attrs = append(attrs, domain.NoteAttribute{Name: na.Name, Value: na.Value})
	}

	var customer *domain.Customer
	if o.Customer != nil {
		customer = &domain.Customer{
			ID:        o.Customer.ID,
			Email:     o.Customer.Email,
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Phone:     o.Customer.Phone,
		}
	}

	return domain.Order{
		ID:              o.ID,
		Name:            o.Name,
		Email:           o.Email,
		CreatedAt:       o.CreatedAt,
		FinancialStatus: o.FinancialStatus,
		// REST order payloads report fulfillment_status as null until the
		// first fulfillment; that is preserved as empty, not defaulted.
		FulfillmentStatus: o.FulfillmentStatus,
		TotalPrice:        o.TotalPrice,
		Currency:          o.Currency,
		Tags:              o.Tags,
		Note:              o.Note,
		Customer:          customer,
		LineItems:         items,
		NoteAttributes:    attrs,
	}
}

func shapeDraftOrder(d restDraftOrder) domain.DraftOrder {
	return domain.DraftOrder{
		ID:         d.ID,
		Name:       d.Name,
		Status:     d.Status,
		TotalPrice: d.TotalPrice,
		InvoiceURL: d.InvoiceURL,
		OrderID:    d.OrderID,
	}
}
