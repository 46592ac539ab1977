package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases.
// Use errors.Is() to check against these.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("not found")
	ErrUpstreamError  = errors.New("upstream error")
)

// APIError represents a structured error for API responses.
// Implements error interface and supports unwrapping.
//
// Every checkout workflow failure carries StatusCode 400: the purchase
// endpoint collapses all failure categories, including upstream outages,
// into a single 400 {errorMessage} shape. Read endpoints use ordinary
// status codes instead.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"` // HTTP status, not serialized
	Err        error  `json:"-"` // Wrapped error, not serialized
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// === Checkout workflow errors ===
// One constructor per failure category. Messages are the caller-visible
// errorMessage strings and must stay stable.

// NewInvalidRequestError reports missing or malformed caller input.
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:       "INVALID_REQUEST",
		Message:    message,
		StatusCode: 400,
		Err:        ErrInvalidRequest,
	}
}

// NewUpstreamQueryError reports a failed offer fetch.
func NewUpstreamQueryError(offerID string, err error) *APIError {
	return &APIError{
		Code:       "UPSTREAM_QUERY_ERROR",
		Message:    fmt.Sprintf("Could not pull data for offer %s. Error: %v", offerID, err),
		StatusCode: 400,
		Err:        fmt.Errorf("%w: %v", ErrUpstreamError, err),
	}
}

// NewOfferNotFoundError reports an offer fetch that returned no page.
func NewOfferNotFoundError() *APIError {
	return &APIError{
		Code:       "OFFER_NOT_FOUND",
		Message:    "Offer page not found",
		StatusCode: 400,
		Err:        ErrNotFound,
	}
}

// NewVariantMissingError reports an offer without a variant reference.
func NewVariantMissingError() *APIError {
	return &APIError{
		Code:       "VARIANT_MISSING",
		Message:    "Variant ID not found in offer",
		StatusCode: 400,
	}
}

// NewPriceMissingError reports an offer without a usable price.
// reason distinguishes the internal cause (attribute absent, malformed
// JSON payload, zero amount) while the caller-visible message stays the
// same for all three.
func NewPriceMissingError(reason error) *APIError {
	return &APIError{
		Code:       "PRICE_MISSING",
		Message:    "Offer price not found",
		StatusCode: 400,
		Err:        reason,
	}
}

// NewCheckoutCreationError reports a failed checkout-create mutation.
// err is nil when the mutation succeeded but returned no checkout object.
func NewCheckoutCreationError(err error) *APIError {
	msg := "Checkout has not been created"
	if err != nil {
		msg = fmt.Sprintf("Could not create a new checkout. Error: %v", err)
	}
	return &APIError{
		Code:       "CHECKOUT_CREATION_FAILED",
		Message:    msg,
		StatusCode: 400,
		Err:        err,
	}
}

// NewMetadataUpdateError reports a failed metadata mutation.
func NewMetadataUpdateError(err error) *APIError {
	return &APIError{
		Code:       "METADATA_UPDATE_FAILED",
		Message:    fmt.Sprintf("Could not update checkout metadata. Error: %v", err),
		StatusCode: 400,
		Err:        err,
	}
}

// NewNoShippingMethodError reports a checkout with no computed shipping methods.
func NewNoShippingMethodError() *APIError {
	return &APIError{
		Code:       "NO_SHIPPING_METHOD",
		Message:    "Shipping method ID not found",
		StatusCode: 400,
	}
}

// NewDeliveryUpdateError reports a failed delivery-method mutation.
func NewDeliveryUpdateError(err error) *APIError {
	return &APIError{
		Code:       "DELIVERY_UPDATE_FAILED",
		Message:    fmt.Sprintf("Could not update delivery. Error: %v", err),
		StatusCode: 400,
		Err:        err,
	}
}

// NewCheckoutCompletionError reports a failed completion mutation.
func NewCheckoutCompletionError(err error) *APIError {
	return &APIError{
		Code:       "CHECKOUT_COMPLETION_FAILED",
		Message:    fmt.Sprintf("Could not complete checkout. Error: %v", err),
		StatusCode: 400,
		Err:        err,
	}
}

// NewOrderNotCreatedError reports a completion that returned no order id.
// This happens when the backend requires an additional payment action,
// which this service does not handle.
func NewOrderNotCreatedError() *APIError {
	return &APIError{
		Code:       "ORDER_NOT_CREATED",
		Message:    "Order ID not found",
		StatusCode: 400,
	}
}

// === Read path errors ===

// NewNotFoundError creates a 404 error for missing resources.
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: 404,
		Err:        ErrNotFound,
	}
}

// NewValidationError creates a 400 error for invalid input.
func NewValidationError(field, reason string) *APIError {
	return &APIError{
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("invalid %s: %s", field, reason),
		StatusCode: 400,
		Err:        ErrInvalidRequest,
	}
}

// NewUpstreamError creates a 502 error for backend failures on the read path.
func NewUpstreamError(service string, err error) *APIError {
	return &APIError{
		Code:       "UPSTREAM_ERROR",
		Message:    fmt.Sprintf("%s request failed", service),
		StatusCode: 502,
		Err:        fmt.Errorf("%w: %v", ErrUpstreamError, err),
	}
}

// NewInternalError creates a 500 error for unexpected failures.
func NewInternalError(err error) *APIError {
	return &APIError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: 500,
		Err:        err,
	}
}
