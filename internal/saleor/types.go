package saleor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Wire types mirroring the backend's GraphQL response shapes. Kept
// separate from internal/model so schema drift stays contained here.

type pageAttribute struct {
	Attribute struct {
		Slug string `json:"slug"`
	} `json:"attribute"`
	Values []struct {
		Name      string `json:"name"`
		Reference string `json:"reference"`
	} `json:"values"`
}

type page struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Slug       string          `json:"slug"`
	Content    string          `json:"content"`
	Attributes []pageAttribute `json:"attributes"`
}

type getPageData struct {
	Page *page `json:"page"`
}

type pageEdge struct {
	Node page `json:"node"`
}

type pageConnection struct {
	Edges []pageEdge `json:"edges"`
}

type getPagesData struct {
	Pages *pageConnection `json:"pages"`
}

type pageTypeEdge struct {
	Node struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"node"`
}

type getPageTypesData struct {
	PageTypes *struct {
		Edges []pageTypeEdge `json:"edges"`
	} `json:"pageTypes"`
}

type shippingMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type checkout struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	ShippingMethods []shippingMethod `json:"shippingMethods"`
}

// mutationError is the backend's data-level error shape, returned inside
// a successful GraphQL response alongside (or instead of) the payload.
type mutationError struct {
	Field   *string `json:"field"`
	Message string  `json:"message"`
	Code    string  `json:"code"`
}

// joinMutationErrors flattens a data-level errors list into one error,
// or nil when the list is empty.
func joinMutationErrors(errs []mutationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		if e.Field != nil && *e.Field != "" {
			msgs[i] = fmt.Sprintf("%s: %s", *e.Field, e.Message)
			continue
		}
		msgs[i] = e.Message
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

type checkoutCreateData struct {
	CheckoutCreate *struct {
		Checkout *checkout       `json:"checkout"`
		Errors   []mutationError `json:"errors"`
	} `json:"checkoutCreate"`
}

type updateMetadataData struct {
	UpdateMetadata *struct {
		Errors []mutationError `json:"errors"`
	} `json:"updateMetadata"`
}

type deliveryUpdateData struct {
	CheckoutDeliveryMethodUpdate *struct {
		Errors []mutationError `json:"errors"`
	} `json:"checkoutDeliveryMethodUpdate"`
}

type checkoutCompleteData struct {
	CheckoutComplete *struct {
		Order *struct {
			ID string `json:"id"`
		} `json:"order"`
		Errors []mutationError `json:"errors"`
	} `json:"checkoutComplete"`
}

type money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type getVariantData struct {
	ProductVariant *struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Pricing *struct {
			Price *struct {
				Gross money `json:"gross"`
			} `json:"price"`
		} `json:"pricing"`
	} `json:"productVariant"`
}
