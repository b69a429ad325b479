// Package checkout implements the ordered checkout state machine:
// Sign In -> Shipping -> Payment -> Place Order. The gate is a pure
// predicate layer; it never navigates or mutates state itself. Navigation
// consults it and bounces the user to the earliest unsatisfied step.
package checkout

import "storefront/internal/models"

// Step is one stage of the checkout flow, in order.
type Step int

const (
	StepSignIn Step = iota
	StepShipping
	StepPayment
	StepPlaceOrder
)

// String returns the user-facing step name.
func (s Step) String() string {
	switch s {
	case StepSignIn:
		return "Sign In"
	case StepShipping:
		return "Shipping"
	case StepPayment:
		return "Payment"
	case StepPlaceOrder:
		return "Place Order"
	default:
		return "Unknown"
	}
}

// Slug returns the navigation name of the step, used as a redirect target.
func (s Step) Slug() string {
	switch s {
	case StepSignIn:
		return "login"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepPlaceOrder:
		return "placeorder"
	default:
		return ""
	}
}

// Steps lists all steps in flow order.
func Steps() []Step {
	return []Step{StepSignIn, StepShipping, StepPayment, StepPlaceOrder}
}

// SessionReader is the read-only view of the auth session the gate needs.
type SessionReader interface {
	IsAuthenticated() bool
}

// CartReader is the read-only view of the cart the gate needs.
type CartReader interface {
	ShippingAddress() *models.Address
	PaymentMethod() string
}

// Gate evaluates step admission against the current session and cart state.
// It holds no state of its own: every call re-reads its inputs.
type Gate struct {
	session SessionReader
	cart    CartReader
}

// NewGate returns a gate reading from the given session and cart.
func NewGate(session SessionReader, cart CartReader) *Gate {
	return &Gate{session: session, cart: cart}
}

func (g *Gate) hasAddress() bool {
	addr := g.cart.ShippingAddress()
	return addr != nil && addr.Complete()
}

// IsStepUnlocked reports whether every prerequisite of step is satisfied.
// Every step requires an authenticated session; Payment additionally needs
// a complete shipping address, and Place Order a selected payment method.
func (g *Gate) IsStepUnlocked(step Step) bool {
	if !g.session.IsAuthenticated() {
		return false
	}
	switch step {
	case StepSignIn, StepShipping:
		return true
	case StepPayment:
		return g.hasAddress()
	case StepPlaceOrder:
		return g.hasAddress() && g.cart.PaymentMethod() != ""
	default:
		return false
	}
}

// RequiredStep returns the step the user must actually be sent to when
// attempting to enter step: the earliest unsatisfied prerequisite, with
// Sign In taking precedence over Shipping over Payment. When all
// prerequisites hold, it returns step itself.
//
// This chained fallback is what makes it impossible to reach Place Order
// having skipped address or payment capture.
func (g *Gate) RequiredStep(step Step) Step {
	if !g.session.IsAuthenticated() {
		return StepSignIn
	}
	if step >= StepPayment && !g.hasAddress() {
		return StepShipping
	}
	if step >= StepPlaceOrder && g.cart.PaymentMethod() == "" {
		return StepPayment
	}
	return step
}
