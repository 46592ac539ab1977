// Package checkout implements the purchase workflow: a strictly linear
// sequence of backend mutations that turns an offer id into an order id.
package checkout

import (
	"context"

	"offer-storefront/internal/commerce"
	"offer-storefront/internal/model"
)

// ResolvedOffer is the outcome of offer resolution: the facts checkout
// creation needs, plus the offer itself for provenance metadata.
type ResolvedOffer struct {
	Offer     *model.Offer
	VariantID string
	Price     model.Price
}

// Resolver fetches an offer and extracts its variant reference and
// structured price. Both must be present and well-formed; absence is a
// terminal error, not a default.
type Resolver struct {
	backend commerce.Backend
}

// NewResolver creates a Resolver on the given backend.
func NewResolver(backend commerce.Backend) *Resolver {
	return &Resolver{backend: backend}
}

// Resolve fetches the offer by id and extracts the purchasable facts.
// Every failure is a *model.APIError from the resolution taxonomy.
func (r *Resolver) Resolve(ctx context.Context, offerID string) (*ResolvedOffer, error) {
	if offerID == "" {
		return nil, model.NewInvalidRequestError("offerId has not been provided")
	}

	offer, err := r.backend.GetOffer(ctx, offerID)
	if err != nil {
		return nil, model.NewUpstreamQueryError(offerID, err)
	}
	if offer == nil {
		return nil, model.NewOfferNotFoundError()
	}

	variantID := offer.VariantRef()
	if variantID == "" {
		return nil, model.NewVariantMissingError()
	}

	// Two-stage price contract: read the attribute string, then decode
	// it, so a malformed payload stays distinguishable from an absent
	// attribute in the wrapped reason.
	raw, err := offer.RawPrice()
	if err != nil {
		return nil, model.NewPriceMissingError(err)
	}
	price, err := model.ParsePrice(raw)
	if err != nil {
		return nil, model.NewPriceMissingError(err)
	}
	if price.IsZero() {
		// A zero amount is indistinguishable from a missing price,
		// so zero-cost offers are rejected.
		return nil, model.NewPriceMissingError(model.ErrPriceZeroAmount)
	}

	return &ResolvedOffer{
		Offer:     offer,
		VariantID: variantID,
		Price:     price,
	}, nil
}
