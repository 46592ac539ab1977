package model

import (
	"errors"
	"testing"
)

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewUpstreamQueryError("off_1", inner)

	if !errors.Is(err, ErrUpstreamError) {
		t.Error("should unwrap to ErrUpstreamError")
	}

	var apiErr *APIError
	if !errors.As(error(err), &apiErr) {
		t.Fatal("errors.As should find APIError")
	}
	if apiErr.Code != "UPSTREAM_QUERY_ERROR" {
		t.Errorf("Code = %s", apiErr.Code)
	}
}

func TestWorkflowErrorMessages(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name        string
		err         *APIError
		wantCode    string
		wantMessage string
	}{
		{
			name:        "invalid request",
			err:         NewInvalidRequestError("offerId has not been provided"),
			wantCode:    "INVALID_REQUEST",
			wantMessage: "offerId has not been provided",
		},
		{
			name:        "upstream query",
			err:         NewUpstreamQueryError("off_1", boom),
			wantCode:    "UPSTREAM_QUERY_ERROR",
			wantMessage: "Could not pull data for offer off_1. Error: boom",
		},
		{
			name:        "offer not found",
			err:         NewOfferNotFoundError(),
			wantCode:    "OFFER_NOT_FOUND",
			wantMessage: "Offer page not found",
		},
		{
			name:        "variant missing",
			err:         NewVariantMissingError(),
			wantCode:    "VARIANT_MISSING",
			wantMessage: "Variant ID not found in offer",
		},
		{
			name:        "price missing",
			err:         NewPriceMissingError(ErrPriceAttributeAbsent),
			wantCode:    "PRICE_MISSING",
			wantMessage: "Offer price not found",
		},
		{
			name:        "checkout creation with cause",
			err:         NewCheckoutCreationError(boom),
			wantCode:    "CHECKOUT_CREATION_FAILED",
			wantMessage: "Could not create a new checkout. Error: boom",
		},
		{
			name:        "checkout creation without object",
			err:         NewCheckoutCreationError(nil),
			wantCode:    "CHECKOUT_CREATION_FAILED",
			wantMessage: "Checkout has not been created",
		},
		{
			name:        "metadata update",
			err:         NewMetadataUpdateError(boom),
			wantCode:    "METADATA_UPDATE_FAILED",
			wantMessage: "Could not update checkout metadata. Error: boom",
		},
		{
			name:        "no shipping method",
			err:         NewNoShippingMethodError(),
			wantCode:    "NO_SHIPPING_METHOD",
			wantMessage: "Shipping method ID not found",
		},
		{
			name:        "delivery update",
			err:         NewDeliveryUpdateError(boom),
			wantCode:    "DELIVERY_UPDATE_FAILED",
			wantMessage: "Could not update delivery. Error: boom",
		},
		{
			name:        "checkout completion",
			err:         NewCheckoutCompletionError(boom),
			wantCode:    "CHECKOUT_COMPLETION_FAILED",
			wantMessage: "Could not complete checkout. Error: boom",
		},
		{
			name:        "order not created",
			err:         NewOrderNotCreatedError(),
			wantCode:    "ORDER_NOT_CREATED",
			wantMessage: "Order ID not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			// Every workflow failure is a 400 at the purchase endpoint.
			if tt.err.StatusCode != 400 {
				t.Errorf("StatusCode = %d, want 400", tt.err.StatusCode)
			}
		})
	}
}

func TestPriceMissingReasonsStayDistinct(t *testing.T) {
	absent := NewPriceMissingError(ErrPriceAttributeAbsent)
	zero := NewPriceMissingError(ErrPriceZeroAmount)

	if !errors.Is(absent, ErrPriceAttributeAbsent) {
		t.Error("absent should unwrap to ErrPriceAttributeAbsent")
	}
	if !errors.Is(zero, ErrPriceZeroAmount) {
		t.Error("zero should unwrap to ErrPriceZeroAmount")
	}
	if errors.Is(absent, ErrPriceZeroAmount) {
		t.Error("reasons must not cross-match")
	}
	if absent.Message != zero.Message {
		t.Error("caller-visible message must be identical for all reasons")
	}
}

func TestReadPathStatusCodes(t *testing.T) {
	if got := NewNotFoundError("store page").StatusCode; got != 404 {
		t.Errorf("not found StatusCode = %d", got)
	}
	if got := NewValidationError("id", "required").StatusCode; got != 400 {
		t.Errorf("validation StatusCode = %d", got)
	}
	if got := NewUpstreamError("backend", errors.New("x")).StatusCode; got != 502 {
		t.Errorf("upstream StatusCode = %d", got)
	}
	if got := NewInternalError(errors.New("x")).StatusCode; got != 500 {
		t.Errorf("internal StatusCode = %d", got)
	}
}
