package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"storefront/internal/api"
	"storefront/internal/checkout"
	"storefront/internal/models"
)

// enterStep consults the gate before a checkout step runs. When a
// prerequisite is missing the user is bounced to the earliest unsatisfied
// step and the intended destination is recorded as the redirect target.
func (a *App) enterStep(step checkout.Step) bool {
	required := a.gate.RequiredStep(step)
	if required == step {
		return true
	}
	if required == checkout.StepSignIn {
		a.session.SetRedirect(step.Slug())
	}
	printlnFn(fmt.Sprintf("Complete %s first ('%s').", required, required.Slug()))
	return false
}

// Shipping captures the shipping address. All four fields are required; a
// rejected submission leaves the previously saved address untouched.
func (a *App) Shipping(ctx context.Context) error {
	if !a.enterStep(checkout.StepShipping) {
		return nil
	}

	street, err := getSimpleText(a.reader, "Street address", os.Stdout)
	if err != nil {
		return err
	}
	city, err := getSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		return err
	}
	postalCode, err := getSimpleText(a.reader, "Postal code", os.Stdout)
	if err != nil {
		return err
	}
	country, err := getSimpleText(a.reader, "Country", os.Stdout)
	if err != nil {
		return err
	}

	err = a.ledger.SetShippingAddress(ctx, models.Address{
		Street:     street,
		City:       city,
		PostalCode: postalCode,
		Country:    country,
	})
	if err != nil {
		return err
	}

	printlnFn("Shipping address saved. Continue with 'payment'.")
	return nil
}

// Payment selects the payment method.
func (a *App) Payment(ctx context.Context) error {
	if !a.enterStep(checkout.StepPayment) {
		return nil
	}

	method, err := getSimpleText(a.reader, "Payment method (e.g. PayPal)", os.Stdout)
	if err != nil {
		return err
	}
	if method == "" {
		method = "PayPal"
	}

	if err := a.ledger.SetPaymentMethod(ctx, method); err != nil {
		return err
	}

	printlnFn("Payment method saved. Continue with 'placeorder'.")
	return nil
}

// PlaceOrder submits the order. On success the cart is cleared and the gate
// falls back to its initial state. The response is applied only if the
// session did not change while the request was in flight.
func (a *App) PlaceOrder(ctx context.Context) error {
	if !a.enterStep(checkout.StepPlaceOrder) {
		return nil
	}

	items := a.ledger.Items()
	if len(items) == 0 {
		printlnFn("Your cart is empty.")
		return nil
	}

	addr := a.ledger.ShippingAddress()
	draft := api.OrderDraft{
		IdempotencyKey:  uuid.NewString(),
		Items:           make([]models.OrderItem, 0, len(items)),
		ShippingAddress: *addr,
		PaymentMethod:   a.ledger.PaymentMethod(),
	}
	for _, item := range items {
		draft.Items = append(draft.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	epoch := a.session.Epoch()
	order, err := a.orders.CreateOrder(ctx, draft)
	if err != nil {
		return a.handleAuthError(ctx, err)
	}
	if a.session.Epoch() != epoch {
		a.log.Warn(ctx, "discarding stale order response", "order", order.ID)
		return nil
	}

	if err := a.ledger.Clear(ctx); err != nil {
		a.log.Warn(ctx, "cart cleanup after order failed", "error", err)
	}

	printlnFn(fmt.Sprintf("Order %s placed. Total: $%.2f", order.ID, order.TotalPrice))
	return nil
}
