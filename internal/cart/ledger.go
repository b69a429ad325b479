// Package cart implements the cart ledger: the owned set of line items,
// quantity rules, merge and removal semantics, and derived totals.
//
// The ledger is confined to the event-handling goroutine; it is not safe
// for concurrent writers.
package cart

import (
	"context"
	"strings"

	"storefront/internal/logging"
	"storefront/internal/models"
)

// Persister mirrors cart state to durable storage. *store.Bridge satisfies it.
type Persister interface {
	SaveCart(ctx context.Context, state models.CartState) error
}

// Ledger owns the in-memory cart state and persists every mutation.
// In-memory state is the source of truth for the current session: a persist
// failure is surfaced but never rolls a mutation back.
type Ledger struct {
	state models.CartState
	store Persister
	log   logging.Logger
}

// NewLedger returns a ledger seeded with state (usually rehydrated from the
// store bridge at startup).
func NewLedger(state models.CartState, store Persister, log logging.Logger) *Ledger {
	if state.Items == nil {
		state.Items = []models.CartItem{}
	}
	return &Ledger{state: state, store: store, log: log}
}

// clampQuantity constrains qty to [1, min(stock, MaxQuantityPerItem)].
// Out-of-range values are silently clamped, never rejected.
func clampQuantity(qty, stock int) int {
	max := stock
	if max > models.MaxQuantityPerItem {
		max = models.MaxQuantityPerItem
	}
	if qty > max {
		qty = max
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// AddItem puts product in the cart with the given quantity. If a line for
// the same product already exists its quantity is replaced, not added to:
// repeated adds express quantity selection. The quantity is clamped to
// [1, min(stock, 10)]. Adding an out-of-stock product is rejected.
//
// The returned error is either a *ValidationError (state unchanged) or a
// persistence failure (state already mutated).
func (l *Ledger) AddItem(ctx context.Context, product models.Product, qty int) error {
	if product.CountInStock < 1 {
		return &ValidationError{Field: "quantity", Reason: "product is out of stock"}
	}

	item := models.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Image:          product.Image,
		UnitPrice:      product.Price,
		Quantity:       clampQuantity(qty, product.CountInStock),
		StockAvailable: product.CountInStock,
	}

	replaced := false
	for i := range l.state.Items {
		if l.state.Items[i].ProductID == item.ProductID {
			l.state.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		l.state.Items = append(l.state.Items, item)
	}

	return l.persist(ctx)
}

// RemoveItem deletes the line for productID. Removing an absent product is
// a no-op, not an error.
func (l *Ledger) RemoveItem(ctx context.Context, productID string) error {
	for i := range l.state.Items {
		if l.state.Items[i].ProductID == productID {
			l.state.Items = append(l.state.Items[:i], l.state.Items[i+1:]...)
			return l.persist(ctx)
		}
	}
	return nil
}

// SetShippingAddress validates and stores the shipping address. All four
// fields must be non-empty after trimming; otherwise a *ValidationError is
// returned and the previous address, if any, stays in place. On success the
// address is replaced wholesale.
func (l *Ledger) SetShippingAddress(ctx context.Context, addr models.Address) error {
	trimmed := models.Address{
		Street:     strings.TrimSpace(addr.Street),
		City:       strings.TrimSpace(addr.City),
		PostalCode: strings.TrimSpace(addr.PostalCode),
		Country:    strings.TrimSpace(addr.Country),
	}

	switch {
	case trimmed.Street == "":
		return &ValidationError{Field: "street", Reason: "required"}
	case trimmed.City == "":
		return &ValidationError{Field: "city", Reason: "required"}
	case trimmed.PostalCode == "":
		return &ValidationError{Field: "postalCode", Reason: "required"}
	case trimmed.Country == "":
		return &ValidationError{Field: "country", Reason: "required"}
	}

	l.state.ShippingAddress = &trimmed
	return l.persist(ctx)
}

// SetPaymentMethod stores the selected payment method.
func (l *Ledger) SetPaymentMethod(ctx context.Context, method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return &ValidationError{Field: "paymentMethod", Reason: "required"}
	}

	l.state.PaymentMethod = method
	return l.persist(ctx)
}

// Clear resets items, shipping address, and payment method to empty
// defaults. Called after logout and after successful order placement.
func (l *Ledger) Clear(ctx context.Context) error {
	l.state = models.EmptyCart()
	return l.persist(ctx)
}

// persist mirrors the current state to durable storage. Failures are logged
// and returned; the in-memory mutation stands regardless.
func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.SaveCart(ctx, l.state); err != nil {
		l.log.Warn(ctx, "failed to persist cart state", "error", err)
		return err
	}
	return nil
}

// Items returns a copy of the cart lines in insertion order.
func (l *Ledger) Items() []models.CartItem {
	items := make([]models.CartItem, len(l.state.Items))
	copy(items, l.state.Items)
	return items
}

// ShippingAddress returns the stored address, or nil when none was submitted.
func (l *Ledger) ShippingAddress() *models.Address {
	if l.state.ShippingAddress == nil {
		return nil
	}
	addr := *l.state.ShippingAddress
	return &addr
}

// PaymentMethod returns the selected payment method, or "".
func (l *Ledger) PaymentMethod() string {
	return l.state.PaymentMethod
}

// ItemCount is the sum of quantities over all lines, recomputed on each call.
func (l *Ledger) ItemCount() int {
	n := 0
	for _, item := range l.state.Items {
		n += item.Quantity
	}
	return n
}

// Subtotal is the sum of unit price times quantity over all lines,
// recomputed on each call so it can never drift after a mutation.
func (l *Ledger) Subtotal() float64 {
	total := 0.0
	for _, item := range l.state.Items {
		total += item.LineTotal()
	}
	return total
}
