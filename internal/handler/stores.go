package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"offer-storefront/internal/model"
)

// Catalog reads are plain pass-throughs: no business logic beyond
// decoding the offer attributes into a display-friendly shape.

// storeListResponse wraps the store listing.
type storeListResponse struct {
	Stores []model.StorePage `json:"stores"`
}

// storeDetailResponse is one store page plus its offers.
type storeDetailResponse struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Slug   string      `json:"slug,omitempty"`
	Offers []offerView `json:"offers"`
}

// offerView is the display shape of an offer. OfferPrice is nil when the
// price attribute is absent or malformed; the card then renders without
// a buyable price, matching the zero-value fallback of the listing UI.
type offerView struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug,omitempty"`
	Content    string       `json:"content,omitempty"`
	VariantID  string       `json:"variantId,omitempty"`
	OfferPrice *model.Price `json:"offerPrice,omitempty"`
}

// handleListStores lists all store pages.
// GET /api/stores
func (h *Handler) handleListStores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageTypeID, err := h.backend.GetStorePageTypeID(ctx)
	if err != nil {
		h.writeError(w, h.upstream(err))
		return
	}

	stores, err := h.backend.ListStorePages(ctx, pageTypeID)
	if err != nil {
		h.writeError(w, h.upstream(err))
		return
	}

	h.writeJSON(w, http.StatusOK, storeListResponse{Stores: stores})
}

// handleGetStore returns one store page with its offers.
// GET /api/stores/{id}
func (h *Handler) handleGetStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	storeID := r.PathValue("id")

	if storeID == "" {
		h.writeError(w, model.NewValidationError("id", "store ID required"))
		return
	}

	store, err := h.backend.GetStorePage(ctx, storeID)
	if err != nil {
		h.writeError(w, h.upstream(err))
		return
	}

	offers := []offerView{}
	if len(store.OfferIDs) > 0 {
		fetched, err := h.backend.GetOffersByIDs(ctx, store.OfferIDs)
		if err != nil {
			h.writeError(w, h.upstream(err))
			return
		}
		for i := range fetched {
			offers = append(offers, offerToView(&fetched[i]))
		}
	}

	h.writeJSON(w, http.StatusOK, storeDetailResponse{
		ID:     store.ID,
		Title:  store.Title,
		Slug:   store.Slug,
		Offers: offers,
	})
}

// handleVariantPricing returns a variant's display price.
// GET /api/variants/{id}/pricing
func (h *Handler) handleVariantPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	variantID := r.PathValue("id")

	if variantID == "" {
		h.writeError(w, model.NewValidationError("id", "variant ID required"))
		return
	}

	h.logger.InfoContext(ctx, "fetching variant pricing",
		slog.String("variant_id", variantID),
	)

	price, err := h.backend.GetVariantPricing(ctx, variantID)
	if err != nil {
		h.writeError(w, h.upstream(err))
		return
	}

	h.writeJSON(w, http.StatusOK, price)
}

// offerToView decodes the display facts of one offer page.
func offerToView(offer *model.Offer) offerView {
	view := offerView{
		ID:        offer.ID,
		Title:     offer.Title,
		Slug:      offer.Slug,
		Content:   offer.Content,
		VariantID: offer.VariantRef(),
	}

	if raw, err := offer.RawPrice(); err == nil {
		if price, err := model.ParsePrice(raw); err == nil {
			view.OfferPrice = &price
		}
	}
	return view
}

// upstream wraps plain backend errors as 502s, passing APIErrors through.
func (h *Handler) upstream(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return model.NewUpstreamError("commerce backend", err)
}
