// MCP transport handler using the official MCP Go SDK.
// Exposes the storefront's listing reads and the purchase workflow as
// tools, so agents can browse stores and buy offers over MCP.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"offer-storefront/internal/model"
)

// === MCP Tool Input/Output Types ===

// ListStoresInput is the input schema for list_stores. No parameters.
type ListStoresInput struct{}

// ListStoresOutput wraps the store listing.
type ListStoresOutput struct {
	Stores []model.StorePage `json:"stores" jsonschema:"store pages"`
}

// GetStoreInput is the input schema for get_store.
type GetStoreInput struct {
	ID string `json:"id" jsonschema:"store page ID,required"`
}

// GetStoreOutput is one store with its offers.
type GetStoreOutput struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Offers []offerView `json:"offers"`
}

// PurchaseOfferInput is the input schema for purchase_offer.
type PurchaseOfferInput struct {
	OfferID string `json:"offer_id" jsonschema:"offer page ID,required"`
}

// PurchaseOfferOutput carries the completed order id.
type PurchaseOfferOutput struct {
	OrderID string `json:"order_id"`
}

// NewMCPServer creates an MCP server with the storefront tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "offer-storefront",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Offer storefront. Use list_stores and get_store to browse " +
				"offers, and purchase_offer to buy one at its offer price.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_stores",
		Description: "List all store pages.",
	}, h.mcpListStores)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_store",
		Description: "Get one store page with its offers, including variant references and offer prices.",
	}, h.mcpGetStore)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "purchase_offer",
		Description: "Purchase an offer at its offer price. Creates a checkout, selects delivery, and completes the order in one call.",
	}, h.mcpPurchaseOffer)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpListStores(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListStoresInput,
) (*mcp.CallToolResult, *ListStoresOutput, error) {
	pageTypeID, err := h.backend.GetStorePageTypeID(ctx)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	stores, err := h.backend.ListStorePages(ctx, pageTypeID)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &ListStoresOutput{Stores: stores}, nil
}

func (h *Handler) mcpGetStore(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetStoreInput,
) (*mcp.CallToolResult, *GetStoreOutput, error) {
	if input.ID == "" {
		return nil, nil, fmt.Errorf("id is required")
	}

	store, err := h.backend.GetStorePage(ctx, input.ID)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	offers := []offerView{}
	if len(store.OfferIDs) > 0 {
		fetched, err := h.backend.GetOffersByIDs(ctx, store.OfferIDs)
		if err != nil {
			return nil, nil, h.mcpError(err)
		}
		for i := range fetched {
			offers = append(offers, offerToView(&fetched[i]))
		}
	}

	return nil, &GetStoreOutput{ID: store.ID, Title: store.Title, Offers: offers}, nil
}

func (h *Handler) mcpPurchaseOffer(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PurchaseOfferInput,
) (*mcp.CallToolResult, *PurchaseOfferOutput, error) {
	orderID, err := h.workflow.Purchase(ctx, input.OfferID)
	if h.observePurchase != nil {
		h.observePurchase(err)
	}
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &PurchaseOfferOutput{OrderID: orderID}, nil
}

// mcpError converts backend errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
