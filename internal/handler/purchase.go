package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"offer-storefront/internal/model"
)

// purchaseRequest is the inbound body of the purchase endpoint.
type purchaseRequest struct {
	OfferID string `json:"offerId"`
}

// purchaseSuccess is the single success shape.
type purchaseSuccess struct {
	OrderID string `json:"orderId"`
}

// purchaseFailure is the single failure shape. Every failure category,
// including upstream outages, collapses to 400 with this body.
type purchaseFailure struct {
	ErrorMessage string `json:"errorMessage"`
}

// handleAddToCart runs the purchase workflow for one offer.
// POST /api/add-to-cart
func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writePurchaseError(w, model.NewInvalidRequestError("offerId has not been provided"))
		return
	}

	h.logger.InfoContext(ctx, "purchase requested",
		slog.String("offer_id", req.OfferID),
	)

	orderID, err := h.workflow.Purchase(ctx, req.OfferID)
	if h.observePurchase != nil {
		h.observePurchase(err)
	}
	if err != nil {
		h.writePurchaseError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, purchaseSuccess{OrderID: orderID})
}

// writePurchaseError writes the 400 {errorMessage} failure shape. The
// message comes from the workflow's failure taxonomy; anything else is
// masked as a generic internal error, still as a 400.
func (h *Handler) writePurchaseError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	message := "an internal error occurred"
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	} else {
		h.logger.Error("purchase internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, http.StatusBadRequest, purchaseFailure{ErrorMessage: message})
}
