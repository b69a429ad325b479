// Package view provides the derived read-only projections consumed by the
// presentation layer: item count, subtotal, user identity, and step-unlock
// flags. Everything here recomputes from the owning components on each call;
// nothing is cached.
package view

import (
	"storefront/internal/checkout"
	"storefront/internal/models"
)

// CartView is the read surface of the cart ledger.
type CartView interface {
	Items() []models.CartItem
	ItemCount() int
	Subtotal() float64
	ShippingAddress() *models.Address
	PaymentMethod() string
}

// SessionView is the read surface of the session manager.
type SessionView interface {
	Current() (models.User, bool)
	IsAuthenticated() bool
}

// StepGate is the read surface of the checkout gate.
type StepGate interface {
	IsStepUnlocked(step checkout.Step) bool
	RequiredStep(step checkout.Step) checkout.Step
}

// CartLine is one display row of the cart.
type CartLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// Selectors is the sole read interface the presentation layer uses.
type Selectors struct {
	cart    CartView
	session SessionView
	gate    StepGate
}

// NewSelectors wires the projections over the given components.
func NewSelectors(cart CartView, session SessionView, gate StepGate) *Selectors {
	return &Selectors{cart: cart, session: session, gate: gate}
}

// ItemCount is the sum of quantities over all cart lines.
func (s *Selectors) ItemCount() int { return s.cart.ItemCount() }

// Subtotal is the derived cart subtotal.
func (s *Selectors) Subtotal() float64 { return s.cart.Subtotal() }

// IsLoggedIn reports whether a session is active.
func (s *Selectors) IsLoggedIn() bool { return s.session.IsAuthenticated() }

// UserName returns the display name of the authenticated user, or "".
func (s *Selectors) UserName() string {
	u, ok := s.session.Current()
	if !ok {
		return ""
	}
	return u.Name
}

// StepUnlocked reports whether the checkout step may be entered.
func (s *Selectors) StepUnlocked(step checkout.Step) bool {
	return s.gate.IsStepUnlocked(step)
}

// RequiredStep returns where navigation must send a user trying to enter step.
func (s *Selectors) RequiredStep(step checkout.Step) checkout.Step {
	return s.gate.RequiredStep(step)
}

// ShippingAddress returns the captured address, or nil.
func (s *Selectors) ShippingAddress() *models.Address { return s.cart.ShippingAddress() }

// PaymentMethod returns the selected payment method, or "".
func (s *Selectors) PaymentMethod() string { return s.cart.PaymentMethod() }

// CartLines returns the cart as display rows with line totals.
func (s *Selectors) CartLines() []CartLine {
	items := s.cart.Items()
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return lines
}
