package model

// Checkout is the backend-owned aggregate created once per purchase
// attempt. This service never persists it; it lives for one request and
// is referenced by its opaque ID between workflow steps.
type Checkout struct {
	ID              string           `json:"id"`
	Email           string           `json:"email,omitempty"`
	ShippingMethods []ShippingMethod `json:"shipping_methods"`
}

// ShippingMethod is one of the delivery options the backend computed for
// a checkout. The workflow always commits to the first one.
type ShippingMethod struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// FirstShippingMethod returns the id of the first computed shipping
// method, or "" when the backend returned none.
func (c *Checkout) FirstShippingMethod() string {
	if len(c.ShippingMethods) == 0 {
		return ""
	}
	return c.ShippingMethods[0].ID
}

// MetadataEntry is one key/value pair in a checkout's metadata bag.
type MetadataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Address is a postal address in the backend's shape.
type Address struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	StreetAddress1 string `json:"street_address_1"`
	City           string `json:"city"`
	CountryArea    string `json:"country_area"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
}

// Buyer is the identity a checkout is created under. The storefront has
// no identity capture step, so this comes from configuration defaults.
type Buyer struct {
	Email           string  `json:"email"`
	BillingAddress  Address `json:"billing_address"`
	ShippingAddress Address `json:"shipping_address"`
}

// StorePage is a catalog page listing offers via the store-offers
// reference attribute.
type StorePage struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug,omitempty"`
	OfferIDs []string `json:"offer_ids,omitempty"`
}
