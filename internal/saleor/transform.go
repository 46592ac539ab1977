package saleor

import (
	"offer-storefront/internal/model"
)

// offerFromPage converts a page wire record into a model.Offer.
func offerFromPage(p *page) *model.Offer {
	attrs := make([]model.Attribute, len(p.Attributes))
	for i, a := range p.Attributes {
		values := make([]model.AttributeValue, len(a.Values))
		for j, v := range a.Values {
			values[j] = model.AttributeValue{
				Name:      v.Name,
				Reference: v.Reference,
			}
		}
		attrs[i] = model.Attribute{
			Slug:   a.Attribute.Slug,
			Values: values,
		}
	}

	return &model.Offer{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		Attributes: attrs,
	}
}

// storePageFromPage converts a page wire record into a model.StorePage,
// resolving its offer references from the store-offers attribute.
func storePageFromPage(p *page) *model.StorePage {
	offer := offerFromPage(p)
	return &model.StorePage{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		OfferIDs: offer.ReferenceValues(model.AttrStoreOffers),
	}
}

// checkoutFromWire converts a checkout wire record into a model.Checkout.
func checkoutFromWire(c *checkout) *model.Checkout {
	methods := make([]model.ShippingMethod, len(c.ShippingMethods))
	for i, m := range c.ShippingMethods {
		methods[i] = model.ShippingMethod{ID: m.ID, Name: m.Name}
	}
	return &model.Checkout{
		ID:              c.ID,
		Email:           c.Email,
		ShippingMethods: methods,
	}
}

// addressInput converts a model.Address into checkoutCreate input fields.
func addressInput(a model.Address) map[string]any {
	return map[string]any{
		"firstName":      a.FirstName,
		"lastName":       a.LastName,
		"streetAddress1": a.StreetAddress1,
		"city":           a.City,
		"countryArea":    a.CountryArea,
		"postalCode":     a.PostalCode,
		"country":        a.Country,
	}
}
