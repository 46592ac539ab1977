// Package model defines the domain types shared across the storefront.
// All entities are owned by the commerce backend; this service only holds
// them for the duration of one request.
package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Attribute slugs that carry checkout semantics on an offer page.
const (
	AttrOfferVariant = "offer-variant"
	AttrOfferPrice   = "offer-price"
	AttrStoreOffers  = "store-offers"
)

// Internal reasons for a missing price. Surfaced through
// NewPriceMissingError so tests can tell the causes apart.
var (
	ErrPriceAttributeAbsent = errors.New("offer-price attribute absent")
	ErrPriceZeroAmount      = errors.New("offer-price amount is zero")
)

// Offer is a catalog page that bundles a purchasable variant with a
// pre-agreed price. The variant reference and the price live in typed
// page attributes, not in dedicated fields.
type Offer struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug,omitempty"`
	Content    string      `json:"content,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Attribute is a typed key/values pair attached to a page.
type Attribute struct {
	Slug   string           `json:"slug"`
	Values []AttributeValue `json:"values"`
}

// AttributeValue holds either a display name or a reference to another
// backend entity (page, variant), depending on the attribute type.
type AttributeValue struct {
	Name      string `json:"name,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// Price is an amount in major currency units plus an ISO currency code.
// The offer-price attribute stores it as a JSON string, so it goes
// through a secondary decode step (see ParsePrice).
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// IsZero reports whether the amount is absent or exactly zero.
// A zero-cost offer is indistinguishable from a missing price here;
// the workflow rejects both.
func (p Price) IsZero() bool {
	return p.Amount.IsZero()
}

// ParsePrice decodes the JSON-encoded offer-price payload, e.g.
// {"amount": 14.99, "currency": "USD"}.
func ParsePrice(raw string) (Price, error) {
	var p Price
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Price{}, fmt.Errorf("parsing offer price %q: %w", raw, err)
	}
	return p, nil
}

// attribute returns the first attribute with the given slug, or nil.
func (o *Offer) attribute(slug string) *Attribute {
	for i := range o.Attributes {
		if o.Attributes[i].Slug == slug {
			return &o.Attributes[i]
		}
	}
	return nil
}

// VariantRef extracts the variant reference from the offer-variant
// attribute: first attribute with the slug, first value's reference.
// Returns "" when absent.
func (o *Offer) VariantRef() string {
	attr := o.attribute(AttrOfferVariant)
	if attr == nil || len(attr.Values) == 0 {
		return ""
	}
	return attr.Values[0].Reference
}

// RawPrice returns the JSON-encoded price string from the offer-price
// attribute, or ErrPriceAttributeAbsent when the attribute or its first
// value is missing. Decoding is the caller's second stage (ParsePrice),
// so an absent attribute stays distinct from a malformed payload.
func (o *Offer) RawPrice() (string, error) {
	attr := o.attribute(AttrOfferPrice)
	if attr == nil || len(attr.Values) == 0 || attr.Values[0].Name == "" {
		return "", ErrPriceAttributeAbsent
	}
	return attr.Values[0].Name, nil
}

// ReferenceValues collects all value references from the attribute with
// the given slug, skipping empty ones. Used for the store-offers list.
func (o *Offer) ReferenceValues(slug string) []string {
	attr := o.attribute(slug)
	if attr == nil {
		return nil
	}
	refs := make([]string, 0, len(attr.Values))
	for _, v := range attr.Values {
		if v.Reference != "" {
			refs = append(refs, v.Reference)
		}
	}
	return refs
}
