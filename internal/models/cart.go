package models

// MaxQuantityPerItem is the upper bound on the quantity of a single cart
// line, regardless of available stock.
const MaxQuantityPerItem = 10

// CartItem is one line of the cart. There is at most one CartItem per
// ProductID; repeated adds replace the quantity rather than accumulate it.
type CartItem struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"qty"`
	StockAvailable int     `json:"stockAvailable"`
}

// LineTotal returns UnitPrice multiplied by Quantity.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Address is a shipping address. Once submitted all four fields are
// non-empty; partial addresses are never stored.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Complete reports whether every field of the address is set.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// CartState is the full persisted cart: line items in insertion order plus
// the shipping address and payment method captured during checkout.
// Totals are always derived, never stored.
type CartState struct {
	Items           []CartItem `json:"items"`
	ShippingAddress *Address   `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
}

// EmptyCart returns the default cart state: no items, no address, no
// payment method.
func EmptyCart() CartState {
	return CartState{Items: []CartItem{}}
}
