// Package commerce defines the interface to the external commerce backend.
// Implementations translate these operations into backend API calls.
package commerce

import (
	"context"

	"offer-storefront/internal/model"
)

// Backend abstracts the commerce backend behind typed operations.
//
// The five checkout operations (GetOffer through CompleteCheckout) are the
// workflow's dependency surface; the remaining reads back the listing
// pages. Implementations report raw backend outcomes; mapping them onto
// the caller-visible failure categories is the checkout workflow's job.
type Backend interface {
	// GetOffer fetches an offer page by id, including its attributes.
	// Returns nil, nil when the backend answered but no page exists.
	GetOffer(ctx context.Context, offerID string) (*model.Offer, error)

	// CreateCheckout creates a new checkout with the request's single
	// line. The line's price overrides the variant's list price. Returns
	// the created checkout including its computed shipping methods, or
	// nil, nil when the mutation succeeded without a checkout object.
	CreateCheckout(ctx context.Context, req *CreateCheckoutRequest) (*model.Checkout, error)

	// UpdateCheckoutMetadata writes the entries into the checkout's
	// metadata bag.
	UpdateCheckoutMetadata(ctx context.Context, checkoutID string, entries []model.MetadataEntry) error

	// SelectDeliveryMethod commits the checkout to a shipping method.
	SelectDeliveryMethod(ctx context.Context, checkoutID, methodID string) error

	// CompleteCheckout converts the checkout into an order and returns
	// the order id. An empty id with a nil error means the mutation
	// succeeded but produced no order, e.g. the backend wants an
	// additional payment action.
	CompleteCheckout(ctx context.Context, checkoutID string) (string, error)

	// GetStorePageTypeID resolves the page type used for store pages.
	GetStorePageTypeID(ctx context.Context) (string, error)

	// ListStorePages returns all pages of the given page type.
	ListStorePages(ctx context.Context, pageTypeID string) ([]model.StorePage, error)

	// GetStorePage fetches one store page with its offer references.
	GetStorePage(ctx context.Context, pageID string) (*model.StorePage, error)

	// GetOffersByIDs fetches offer pages in bulk for a store listing.
	GetOffersByIDs(ctx context.Context, ids []string) ([]model.Offer, error)

	// GetVariantPricing returns the variant's backend-computed gross
	// price. Display only; never the charged amount.
	GetVariantPricing(ctx context.Context, variantID string) (*model.Price, error)
}

// CreateCheckoutRequest contains data for creating a checkout.
// Quantity is fixed at one line with quantity 1.
type CreateCheckoutRequest struct {
	VariantID string      `json:"variant_id"`
	Price     model.Price `json:"price"`
	Channel   string      `json:"channel"`
	Buyer     model.Buyer `json:"buyer"`
}
