package commerce

import (
	"context"

	"offer-storefront/internal/model"
)

// Mock implements Backend for testing.
// Each method can be configured via function fields. Mutation counters
// track how many backend writes a workflow issued, which the short-circuit
// tests assert on.
type Mock struct {
	GetOfferFunc               func(ctx context.Context, offerID string) (*model.Offer, error)
	CreateCheckoutFunc         func(ctx context.Context, req *CreateCheckoutRequest) (*model.Checkout, error)
	UpdateCheckoutMetadataFunc func(ctx context.Context, checkoutID string, entries []model.MetadataEntry) error
	SelectDeliveryMethodFunc   func(ctx context.Context, checkoutID, methodID string) error
	CompleteCheckoutFunc       func(ctx context.Context, checkoutID string) (string, error)
	GetStorePageTypeIDFunc     func(ctx context.Context) (string, error)
	ListStorePagesFunc         func(ctx context.Context, pageTypeID string) ([]model.StorePage, error)
	GetStorePageFunc           func(ctx context.Context, pageID string) (*model.StorePage, error)
	GetOffersByIDsFunc         func(ctx context.Context, ids []string) ([]model.Offer, error)
	GetVariantPricingFunc      func(ctx context.Context, variantID string) (*model.Price, error)

	// Mutations counts backend writes (create, metadata, delivery,
	// complete). Reads are not counted.
	Mutations int
}

// GetOffer calls the configured GetOfferFunc or reports no page.
func (m *Mock) GetOffer(ctx context.Context, offerID string) (*model.Offer, error) {
	if m.GetOfferFunc != nil {
		return m.GetOfferFunc(ctx, offerID)
	}
	return nil, nil
}

// CreateCheckout calls the configured CreateCheckoutFunc or reports no
// checkout object.
func (m *Mock) CreateCheckout(ctx context.Context, req *CreateCheckoutRequest) (*model.Checkout, error) {
	m.Mutations++
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, req)
	}
	return nil, nil
}

// UpdateCheckoutMetadata calls the configured func or succeeds.
func (m *Mock) UpdateCheckoutMetadata(ctx context.Context, checkoutID string, entries []model.MetadataEntry) error {
	m.Mutations++
	if m.UpdateCheckoutMetadataFunc != nil {
		return m.UpdateCheckoutMetadataFunc(ctx, checkoutID, entries)
	}
	return nil
}

// SelectDeliveryMethod calls the configured func or succeeds.
func (m *Mock) SelectDeliveryMethod(ctx context.Context, checkoutID, methodID string) error {
	m.Mutations++
	if m.SelectDeliveryMethodFunc != nil {
		return m.SelectDeliveryMethodFunc(ctx, checkoutID, methodID)
	}
	return nil
}

// CompleteCheckout calls the configured func or reports no order.
func (m *Mock) CompleteCheckout(ctx context.Context, checkoutID string) (string, error) {
	m.Mutations++
	if m.CompleteCheckoutFunc != nil {
		return m.CompleteCheckoutFunc(ctx, checkoutID)
	}
	return "", nil
}

// GetStorePageTypeID calls the configured func or reports not found.
func (m *Mock) GetStorePageTypeID(ctx context.Context) (string, error) {
	if m.GetStorePageTypeIDFunc != nil {
		return m.GetStorePageTypeIDFunc(ctx)
	}
	return "", model.NewNotFoundError("store page type")
}

// ListStorePages calls the configured func or returns an empty list.
func (m *Mock) ListStorePages(ctx context.Context, pageTypeID string) ([]model.StorePage, error) {
	if m.ListStorePagesFunc != nil {
		return m.ListStorePagesFunc(ctx, pageTypeID)
	}
	return []model.StorePage{}, nil
}

// GetStorePage calls the configured func or reports not found.
func (m *Mock) GetStorePage(ctx context.Context, pageID string) (*model.StorePage, error) {
	if m.GetStorePageFunc != nil {
		return m.GetStorePageFunc(ctx, pageID)
	}
	return nil, model.NewNotFoundError("store page")
}

// GetOffersByIDs calls the configured func or returns an empty list.
func (m *Mock) GetOffersByIDs(ctx context.Context, ids []string) ([]model.Offer, error) {
	if m.GetOffersByIDsFunc != nil {
		return m.GetOffersByIDsFunc(ctx, ids)
	}
	return []model.Offer{}, nil
}

// GetVariantPricing calls the configured func or reports not found.
func (m *Mock) GetVariantPricing(ctx context.Context, variantID string) (*model.Price, error) {
	if m.GetVariantPricingFunc != nil {
		return m.GetVariantPricingFunc(ctx, variantID)
	}
	return nil, model.NewNotFoundError("variant")
}

// Verify Mock implements Backend interface at compile time.
var _ Backend = (*Mock)(nil)
