package checkout

import (
	"context"
	"log/slog"

	"offer-storefront/internal/commerce"
	"offer-storefront/internal/model"
)

// Step identifies one stage of the purchase workflow. Used as a label in
// logs and metrics, and reported with every failure.
type Step string

const (
	StepResolve  Step = "resolve"
	StepCreate   Step = "create"
	StepAnnotate Step = "annotate"
	StepDelivery Step = "delivery"
	StepComplete Step = "complete"
)

// Metadata keys written onto every checkout for provenance.
const (
	metaKeyOfferID   = "offerId"
	metaKeyOfferName = "offerName"
)

// Config holds workflow dependencies.
type Config struct {
	Backend commerce.Backend
	Channel string
	Buyer   model.Buyer
	Logger  *slog.Logger

	// Observe, when set, is called once per finished step with the
	// failure (nil on success). The metrics layer hangs counters off it.
	Observe func(step Step, err error)
}

// Workflow runs the purchase sequence. Stateless between invocations:
// each Purchase call creates a fresh checkout on the backend, so
// re-invoking after a partial failure never resumes the orphaned one.
type Workflow struct {
	backend  commerce.Backend
	resolver *Resolver
	channel  string
	buyer    model.Buyer
	logger   *slog.Logger
	observe  func(Step, error)
}

// New creates a Workflow from the configuration.
func New(cfg Config) *Workflow {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		backend:  cfg.Backend,
		resolver: NewResolver(cfg.Backend),
		channel:  cfg.Channel,
		buyer:    cfg.Buyer,
		logger:   logger,
		observe:  cfg.Observe,
	}
}

// Purchase turns an offer id into a completed order id.
//
// The steps run strictly in order, one backend round-trip at a time:
// resolve → create → annotate → delivery → complete. The first step to
// fail stops the pipeline; earlier side effects are not compensated, so
// an annotation or delivery failure leaves an orphaned checkout behind.
// That is accepted behavior, not a bug.
//
// Exactly one of the results is set: a non-empty order id, or an error
// whose message is the caller-visible errorMessage.
func (w *Workflow) Purchase(ctx context.Context, offerID string) (string, error) {
	resolved, err := w.resolver.Resolve(ctx, offerID)
	if w.done(StepResolve, err) {
		return "", err
	}

	w.logger.InfoContext(ctx, "offer resolved",
		slog.String("offer_id", offerID),
		slog.String("variant_id", resolved.VariantID),
		slog.String("amount", resolved.Price.Amount.String()),
		slog.String("currency", resolved.Price.Currency),
	)

	chk, err := w.createCheckout(ctx, resolved)
	if w.done(StepCreate, err) {
		return "", err
	}

	w.logger.InfoContext(ctx, "checkout created",
		slog.String("checkout_id", chk.ID),
		slog.Int("shipping_methods", len(chk.ShippingMethods)),
	)

	err = w.annotate(ctx, chk.ID, resolved.Offer)
	if w.done(StepAnnotate, err) {
		return "", err
	}

	err = w.selectDelivery(ctx, chk)
	if w.done(StepDelivery, err) {
		return "", err
	}

	orderID, err := w.complete(ctx, chk.ID)
	if w.done(StepComplete, err) {
		return "", err
	}

	w.logger.InfoContext(ctx, "checkout completed",
		slog.String("checkout_id", chk.ID),
		slog.String("order_id", orderID),
	)
	return orderID, nil
}

// done records the step outcome and reports whether the pipeline stops.
func (w *Workflow) done(step Step, err error) bool {
	if w.observe != nil {
		w.observe(step, err)
	}
	if err != nil {
		w.logger.Error("purchase step failed",
			slog.String("step", string(step)),
			slog.String("error", err.Error()),
		)
		return true
	}
	return false
}

// createCheckout seeds a new checkout with the fixed buyer identity and
// one line at the offer price.
func (w *Workflow) createCheckout(ctx context.Context, resolved *ResolvedOffer) (*model.Checkout, error) {
	chk, err := w.backend.CreateCheckout(ctx, &commerce.CreateCheckoutRequest{
		VariantID: resolved.VariantID,
		Price:     resolved.Price,
		Channel:   w.channel,
		Buyer:     w.buyer,
	})
	if err != nil {
		return nil, model.NewCheckoutCreationError(err)
	}
	if chk == nil {
		return nil, model.NewCheckoutCreationError(nil)
	}
	return chk, nil
}

// annotate attaches offer provenance to the checkout. A failure here
// aborts the workflow even though the checkout already exists.
func (w *Workflow) annotate(ctx context.Context, checkoutID string, offer *model.Offer) error {
	err := w.backend.UpdateCheckoutMetadata(ctx, checkoutID, []model.MetadataEntry{
		{Key: metaKeyOfferID, Value: offer.ID},
		{Key: metaKeyOfferName, Value: offer.Title},
	})
	if err != nil {
		return model.NewMetadataUpdateError(err)
	}
	return nil
}

// selectDelivery commits to the first shipping method the backend
// computed. No cost or speed comparison.
func (w *Workflow) selectDelivery(ctx context.Context, chk *model.Checkout) error {
	methodID := chk.FirstShippingMethod()
	if methodID == "" {
		return model.NewNoShippingMethodError()
	}
	if err := w.backend.SelectDeliveryMethod(ctx, chk.ID, methodID); err != nil {
		return model.NewDeliveryUpdateError(err)
	}
	return nil
}

// complete finalizes the checkout into an order.
func (w *Workflow) complete(ctx context.Context, checkoutID string) (string, error) {
	orderID, err := w.backend.CompleteCheckout(ctx, checkoutID)
	if err != nil {
		return "", model.NewCheckoutCompletionError(err)
	}
	if orderID == "" {
		return "", model.NewOrderNotCreatedError()
	}
	return orderID, nil
}
