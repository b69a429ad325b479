package cli

import (
	"context"
	"fmt"
)

// Orders lists the orders of the authenticated user.
func (a *App) Orders(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please 'login' first.")
		return nil
	}

	orders, err := a.orders.ListMine(ctx)
	if err != nil {
		return a.handleAuthError(ctx, err)
	}
	if len(orders) == 0 {
		printlnFn("No orders yet.")
		return nil
	}

	for _, o := range orders {
		status := "processing"
		if o.IsDelivered {
			status = "delivered"
		} else if o.IsPaid {
			status = "paid"
		}
		printlnFn(fmt.Sprintf("%-24s  %s  $%.2f  %s",
			o.ID, o.CreatedAt.Format("2006-01-02"), o.TotalPrice, status))
	}
	return nil
}

// ShowOrder prints the details of a single order.
func (a *App) ShowOrder(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Please 'login' first.")
		return nil
	}

	o, err := a.orders.Get(ctx, id)
	if err != nil {
		return a.handleAuthError(ctx, err)
	}

	printlnFn("Order " + o.ID)
	for _, item := range o.Items {
		printlnFn(fmt.Sprintf("  %-30s  %d x $%.2f", item.Name, item.Quantity, item.UnitPrice))
	}
	printlnFn(fmt.Sprintf("Ship to: %s, %s, %s, %s",
		o.ShippingAddress.Street, o.ShippingAddress.City, o.ShippingAddress.PostalCode, o.ShippingAddress.Country))
	printlnFn(fmt.Sprintf("Items: $%.2f  Shipping: $%.2f  Tax: $%.2f  Total: $%.2f",
		o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.TotalPrice))
	printlnFn(fmt.Sprintf("Paid: %t  Delivered: %t", o.IsPaid, o.IsDelivered))
	return nil
}
