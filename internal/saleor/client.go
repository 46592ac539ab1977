// Package saleor implements commerce.Backend against a Saleor-compatible
// GraphQL API. Offers and stores are modeled as CMS pages with typed
// attributes; checkout and order are first-class backend aggregates.
package saleor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"offer-storefront/internal/commerce"
	"offer-storefront/internal/graphql"
	"offer-storefront/internal/model"
)

// Config holds Saleor client configuration.
type Config struct {
	// APIURL is the GraphQL endpoint, e.g. https://demo.saleor.cloud/graphql/.
	APIURL string

	// Channel is the sales channel checkouts are created in.
	Channel string

	// Tokens supplies the app token stored in the APL.
	Tokens graphql.TokenSource

	// Timeout bounds each backend round-trip.
	Timeout time.Duration

	// HTTPClient overrides the transport; tests point it at fakes.
	HTTPClient *http.Client

	// Observe forwards per-operation timings to the metrics layer.
	Observe func(operation string, d time.Duration, err error)
}

// Client talks to one Saleor installation. Safe for concurrent use.
type Client struct {
	gql     *graphql.Client
	channel string
}

// New creates a Client from the configuration.
func New(cfg Config) (*Client, error) {
	if cfg.Channel == "" {
		return nil, fmt.Errorf("channel is required")
	}

	gql, err := graphql.New(graphql.Config{
		URL:        cfg.APIURL,
		Tokens:     cfg.Tokens,
		Timeout:    cfg.Timeout,
		HTTPClient: cfg.HTTPClient,
		Observe:    cfg.Observe,
	})
	if err != nil {
		return nil, err
	}

	return &Client{gql: gql, channel: cfg.Channel}, nil
}

// GetOffer fetches an offer page by id. Returns nil, nil when the query
// succeeded but no page exists.
func (c *Client) GetOffer(ctx context.Context, offerID string) (*model.Offer, error) {
	var data getPageData
	if err := c.gql.Do(ctx, "GetStoreOffer", getStoreOfferQuery, map[string]any{"id": offerID}, &data); err != nil {
		return nil, err
	}
	if data.Page == nil {
		return nil, nil
	}
	return offerFromPage(data.Page), nil
}

// CreateCheckout creates a checkout with a single line at the offer
// price. The price field on the line overrides the variant's list price,
// which requires the app token's handle-checkouts permission.
func (c *Client) CreateCheckout(ctx context.Context, req *commerce.CreateCheckoutRequest) (*model.Checkout, error) {
	input := map[string]any{
		"channel":         c.channel,
		"email":           req.Buyer.Email,
		"billingAddress":  addressInput(req.Buyer.BillingAddress),
		"shippingAddress": addressInput(req.Buyer.ShippingAddress),
		"lines": []map[string]any{
			{
				"quantity":  1,
				"variantId": req.VariantID,
				"price":     json.Number(req.Price.Amount.String()),
			},
		},
	}
	if req.Channel != "" {
		input["channel"] = req.Channel
	}

	var data checkoutCreateData
	if err := c.gql.Do(ctx, "CreateOfferCheckout", createCheckoutMutation, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	if data.CheckoutCreate == nil {
		return nil, nil
	}
	if err := joinMutationErrors(data.CheckoutCreate.Errors); err != nil {
		return nil, err
	}
	if data.CheckoutCreate.Checkout == nil {
		return nil, nil
	}
	return checkoutFromWire(data.CheckoutCreate.Checkout), nil
}

// UpdateCheckoutMetadata writes provenance entries onto the checkout.
func (c *Client) UpdateCheckoutMetadata(ctx context.Context, checkoutID string, entries []model.MetadataEntry) error {
	metadata := make([]map[string]string, len(entries))
	for i, e := range entries {
		metadata[i] = map[string]string{"key": e.Key, "value": e.Value}
	}

	var data updateMetadataData
	err := c.gql.Do(ctx, "UpdateCheckoutMetadata", updateCheckoutMetadataMutation,
		map[string]any{"id": checkoutID, "metadata": metadata}, &data)
	if err != nil {
		return err
	}
	if data.UpdateMetadata != nil {
		return joinMutationErrors(data.UpdateMetadata.Errors)
	}
	return nil
}

// SelectDeliveryMethod commits the checkout to a shipping method.
func (c *Client) SelectDeliveryMethod(ctx context.Context, checkoutID, methodID string) error {
	var data deliveryUpdateData
	err := c.gql.Do(ctx, "UpdateDelivery", updateDeliveryMutation,
		map[string]any{"id": checkoutID, "methodId": methodID}, &data)
	if err != nil {
		return err
	}
	if data.CheckoutDeliveryMethodUpdate != nil {
		return joinMutationErrors(data.CheckoutDeliveryMethodUpdate.Errors)
	}
	return nil
}

// CompleteCheckout converts the checkout into an order. Returns "" with
// a nil error when the mutation succeeded but produced no order.
func (c *Client) CompleteCheckout(ctx context.Context, checkoutID string) (string, error) {
	var data checkoutCompleteData
	err := c.gql.Do(ctx, "CompleteCheckout", completeCheckoutMutation,
		map[string]any{"id": checkoutID}, &data)
	if err != nil {
		return "", err
	}
	if data.CheckoutComplete == nil {
		return "", nil
	}
	if err := joinMutationErrors(data.CheckoutComplete.Errors); err != nil {
		return "", err
	}
	if data.CheckoutComplete.Order == nil {
		return "", nil
	}
	return data.CheckoutComplete.Order.ID, nil
}

// GetStorePageTypeID resolves the page type whose name contains "store".
func (c *Client) GetStorePageTypeID(ctx context.Context) (string, error) {
	var data getPageTypesData
	if err := c.gql.Do(ctx, "GetStorePageType", getStorePageTypeQuery, nil, &data); err != nil {
		return "", err
	}
	if data.PageTypes == nil || len(data.PageTypes.Edges) == 0 {
		return "", model.NewNotFoundError("store page type")
	}
	return data.PageTypes.Edges[0].Node.ID, nil
}

// ListStorePages returns all pages of the store page type.
func (c *Client) ListStorePages(ctx context.Context, pageTypeID string) ([]model.StorePage, error) {
	var data getPagesData
	err := c.gql.Do(ctx, "GetStorePages", getStorePagesQuery,
		map[string]any{"pageTypeId": pageTypeID}, &data)
	if err != nil {
		return nil, err
	}

	pages := []model.StorePage{}
	if data.Pages == nil {
		return pages, nil
	}
	for _, edge := range data.Pages.Edges {
		p := edge.Node
		pages = append(pages, model.StorePage{ID: p.ID, Title: p.Title, Slug: p.Slug})
	}
	return pages, nil
}

// GetStorePage fetches one store page including its offer references.
func (c *Client) GetStorePage(ctx context.Context, pageID string) (*model.StorePage, error) {
	var data getPageData
	if err := c.gql.Do(ctx, "GetStorePage", getStorePageQuery, map[string]any{"id": pageID}, &data); err != nil {
		return nil, err
	}
	if data.Page == nil {
		return nil, model.NewNotFoundError("store page")
	}
	return storePageFromPage(data.Page), nil
}

// GetOffersByIDs fetches offer pages in bulk.
func (c *Client) GetOffersByIDs(ctx context.Context, ids []string) ([]model.Offer, error) {
	var data getPagesData
	err := c.gql.Do(ctx, "GetStoreOffers", getStoreOffersQuery,
		map[string]any{"ids": ids}, &data)
	if err != nil {
		return nil, err
	}

	offers := []model.Offer{}
	if data.Pages == nil {
		return offers, nil
	}
	for _, edge := range data.Pages.Edges {
		p := edge.Node
		offers = append(offers, *offerFromPage(&p))
	}
	return offers, nil
}

// GetVariantPricing returns the variant's channel-specific gross price.
// Display only; the charged amount always comes from the offer.
func (c *Client) GetVariantPricing(ctx context.Context, variantID string) (*model.Price, error) {
	var data getVariantData
	err := c.gql.Do(ctx, "GetVariant", getVariantQuery,
		map[string]any{"id": variantID, "channel": c.channel}, &data)
	if err != nil {
		return nil, err
	}
	v := data.ProductVariant
	if v == nil {
		return nil, model.NewNotFoundError("variant")
	}
	if v.Pricing == nil || v.Pricing.Price == nil {
		return nil, model.NewNotFoundError("variant pricing")
	}
	return &model.Price{
		Amount:   v.Pricing.Price.Gross.Amount,
		Currency: v.Pricing.Price.Gross.Currency,
	}, nil
}

// Verify Client implements commerce.Backend at compile time.
var _ commerce.Backend = (*Client)(nil)
