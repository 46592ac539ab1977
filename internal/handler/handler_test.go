package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"offer-storefront/internal/checkout"
	"offer-storefront/internal/commerce"
	"offer-storefront/internal/model"
)

func testHandler(mock *commerce.Mock, opts ...Option) (*Handler, *http.ServeMux) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wf := checkout.New(checkout.Config{
		Backend: mock,
		Channel: "default-channel",
		Buyer:   model.Buyer{Email: "demo@saleor.io"},
		Logger:  logger,
	})
	h := New(wf, mock, logger, opts...)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

// purchasableOffer builds an offer page that resolves cleanly.
func purchasableOffer(id string) *model.Offer {
	return &model.Offer{
		ID:    id,
		Title: "Test Offer",
		Attributes: []model.Attribute{
			{
				Slug:   model.AttrOfferVariant,
				Values: []model.AttributeValue{{Reference: "var_9"}},
			},
			{
				Slug:   model.AttrOfferPrice,
				Values: []model.AttributeValue{{Name: `{"amount": 14.99, "currency": "USD"}`}},
			},
		},
	}
}

func TestHandleHealth(t *testing.T) {
	_, mux := testHandler(&commerce.Mock{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp healthResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != "ok" {
		t.Errorf("Status = %s, want ok", resp.Status)
	}
}

func TestHandleAddToCartSuccess(t *testing.T) {
	mock := &commerce.Mock{
		GetOfferFunc: func(_ context.Context, offerID string) (*model.Offer, error) {
			return purchasableOffer(offerID), nil
		},
		CreateCheckoutFunc: func(_ context.Context, _ *commerce.CreateCheckoutRequest) (*model.Checkout, error) {
			return &model.Checkout{
				ID:              "chk_1",
				ShippingMethods: []model.ShippingMethod{{ID: "ship_a"}},
			}, nil
		},
		CompleteCheckoutFunc: func(_ context.Context, _ string) (string, error) {
			return "ord_1", nil
		},
	}
	_, mux := testHandler(mock)

	body := bytes.NewBufferString(`{"offerId": "off_1"}`)
	req := httptest.NewRequest("POST", "/api/add-to-cart", body)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var resp purchaseSuccess
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.OrderID != "ord_1" {
		t.Errorf("OrderID = %s, want ord_1", resp.OrderID)
	}
}

func TestHandleAddToCartFailures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		mock        *commerce.Mock
		wantMessage string
	}{
		{
			name:        "invalid json",
			body:        "{not json",
			mock:        &commerce.Mock{},
			wantMessage: "offerId has not been provided",
		},
		{
			name:        "missing offer id",
			body:        `{}`,
			mock:        &commerce.Mock{},
			wantMessage: "offerId has not been provided",
		},
		{
			name: "offer not found",
			body: `{"offerId": "off_missing"}`,
			mock: &commerce.Mock{}, // default GetOffer reports no page
			wantMessage: "Offer page not found",
		},
		{
			name: "backend outage still a 400",
			body: `{"offerId": "off_1"}`,
			mock: &commerce.Mock{
				GetOfferFunc: func(_ context.Context, _ string) (*model.Offer, error) {
					return nil, errors.New("connection refused")
				},
			},
			wantMessage: "Could not pull data for offer off_1. Error: connection refused",
		},
		{
			name: "completion without order",
			body: `{"offerId": "off_1"}`,
			mock: &commerce.Mock{
				GetOfferFunc: func(_ context.Context, offerID string) (*model.Offer, error) {
					return purchasableOffer(offerID), nil
				},
				CreateCheckoutFunc: func(_ context.Context, _ *commerce.CreateCheckoutRequest) (*model.Checkout, error) {
					return &model.Checkout{
						ID:              "chk_1",
						ShippingMethods: []model.ShippingMethod{{ID: "ship_a"}},
					}, nil
				},
				// default CompleteCheckout reports no order id
			},
			wantMessage: "Order ID not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mux := testHandler(tt.mock)

			req := httptest.NewRequest("POST", "/api/add-to-cart", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// Every failure category shares the 400 {errorMessage} shape.
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var resp purchaseFailure
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.ErrorMessage != tt.wantMessage {
				t.Errorf("ErrorMessage = %q, want %q", resp.ErrorMessage, tt.wantMessage)
			}
		})
	}
}

func TestHandleAddToCartObserver(t *testing.T) {
	var observed []error
	mock := &commerce.Mock{} // offer not found path

	_, mux := testHandler(mock, WithPurchaseObserver(func(err error) {
		observed = append(observed, err)
	}))

	req := httptest.NewRequest("POST", "/api/add-to-cart", bytes.NewBufferString(`{"offerId": "off_1"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if len(observed) != 1 {
		t.Fatalf("observer called %d times, want 1", len(observed))
	}
	if observed[0] == nil {
		t.Error("observer should have seen the failure")
	}
}

func TestHandleListStores(t *testing.T) {
	mock := &commerce.Mock{
		GetStorePageTypeIDFunc: func(_ context.Context) (string, error) {
			return "ptype_1", nil
		},
		ListStorePagesFunc: func(_ context.Context, pageTypeID string) ([]model.StorePage, error) {
			if pageTypeID != "ptype_1" {
				t.Errorf("pageTypeID = %s, want ptype_1", pageTypeID)
			}
			return []model.StorePage{
				{ID: "store_1", Title: "First Store", OfferIDs: []string{"off_1"}},
			}, nil
		},
	}
	_, mux := testHandler(mock)

	req := httptest.NewRequest("GET", "/api/stores", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp storeListResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Stores) != 1 || resp.Stores[0].ID != "store_1" {
		t.Errorf("Stores = %+v, want one store_1", resp.Stores)
	}
}

func TestHandleListStoresUpstreamFailure(t *testing.T) {
	mock := &commerce.Mock{
		GetStorePageTypeIDFunc: func(_ context.Context) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	_, mux := testHandler(mock)

	req := httptest.NewRequest("GET", "/api/stores", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	// Read path keeps real status codes, unlike the purchase path.
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusBadGateway)
	}

	var resp errorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "UPSTREAM_ERROR" {
		t.Errorf("Code = %s, want UPSTREAM_ERROR", resp.Error.Code)
	}
}

func TestHandleGetStore(t *testing.T) {
	mock := &commerce.Mock{
		GetStorePageFunc: func(_ context.Context, pageID string) (*model.StorePage, error) {
			return &model.StorePage{
				ID:       pageID,
				Title:    "First Store",
				OfferIDs: []string{"off_1", "off_2"},
			}, nil
		},
		GetOffersByIDsFunc: func(_ context.Context, ids []string) ([]model.Offer, error) {
			return []model.Offer{
				*purchasableOffer("off_1"),
				{ID: "off_2", Title: "Priceless Offer"},
			}, nil
		},
	}
	_, mux := testHandler(mock)

	req := httptest.NewRequest("GET", "/api/stores/store_1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp storeDetailResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "store_1" || len(resp.Offers) != 2 {
		t.Fatalf("got %+v, want store_1 with 2 offers", resp)
	}

	priced := resp.Offers[0]
	if priced.VariantID != "var_9" {
		t.Errorf("VariantID = %s, want var_9", priced.VariantID)
	}
	if priced.OfferPrice == nil || !priced.OfferPrice.Amount.Equal(decimal.RequireFromString("14.99")) {
		t.Errorf("OfferPrice = %+v, want 14.99", priced.OfferPrice)
	}

	// Offers without a price attribute render without one.
	if resp.Offers[1].OfferPrice != nil {
		t.Errorf("OfferPrice = %+v, want nil", resp.Offers[1].OfferPrice)
	}
}

func TestHandleGetStoreNotFound(t *testing.T) {
	_, mux := testHandler(&commerce.Mock{}) // default GetStorePage reports not found

	req := httptest.NewRequest("GET", "/api/stores/store_missing", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp errorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Code = %s, want NOT_FOUND", resp.Error.Code)
	}
}

func TestHandleVariantPricing(t *testing.T) {
	mock := &commerce.Mock{
		GetVariantPricingFunc: func(_ context.Context, variantID string) (*model.Price, error) {
			if variantID != "var_9" {
				t.Errorf("variantID = %s, want var_9", variantID)
			}
			return &model.Price{Amount: decimal.RequireFromString("14.99"), Currency: "USD"}, nil
		},
	}
	_, mux := testHandler(mock)

	req := httptest.NewRequest("GET", "/api/variants/var_9/pricing", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp model.Price
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Currency != "USD" || !resp.Amount.Equal(decimal.RequireFromString("14.99")) {
		t.Errorf("got %+v, want 14.99 USD", resp)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, mux := testHandler(&commerce.Mock{})

	req := httptest.NewRequest("GET", "/api/add-to-cart", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
