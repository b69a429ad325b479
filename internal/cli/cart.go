package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Add puts a product in the cart: `add <id> [qty]`. The product is fetched
// fresh so the stock snapshot the clamp works against is current. Repeating
// the command with a different quantity selects the new quantity; it does
// not accumulate.
func (a *App) Add(ctx context.Context, args []string) error {
	id := args[0]
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			printlnFn("Usage: add <id> [qty]")
			return nil
		}
		qty = n
	}

	product, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := a.ledger.AddItem(ctx, product, qty); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Added %s. Cart: %d items, subtotal $%.2f",
		product.Name, a.view.ItemCount(), a.view.Subtotal()))
	return nil
}

// Remove deletes a cart line by product id. Removing something that is not
// in the cart is not an error.
func (a *App) Remove(ctx context.Context, id string) error {
	if err := a.ledger.RemoveItem(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Cart: %d items, subtotal $%.2f", a.view.ItemCount(), a.view.Subtotal()))
	return nil
}

// ShowCart renders the cart through the view selectors.
func (a *App) ShowCart(ctx context.Context) error {
	lines := a.view.CartLines()
	if len(lines) == 0 {
		printlnFn("Your cart is empty.")
		return nil
	}

	for _, line := range lines {
		printlnFn(fmt.Sprintf("%-24s  %-30s  %d x $%.2f = $%.2f",
			line.ProductID, line.Name, line.Quantity, line.UnitPrice, line.LineTotal))
	}
	printlnFn(fmt.Sprintf("Subtotal (%d items): $%.2f", a.view.ItemCount(), a.view.Subtotal()))

	if addr := a.view.ShippingAddress(); addr != nil {
		printlnFn(fmt.Sprintf("Ship to: %s, %s, %s, %s", addr.Street, addr.City, addr.PostalCode, addr.Country))
	}
	if method := a.view.PaymentMethod(); method != "" {
		printlnFn("Pay with: " + method)
	}
	return nil
}
