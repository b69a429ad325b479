package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Browse lists a catalog page: `browse [keyword] [page]`.
func (a *App) Browse(ctx context.Context, args []string) error {
	keyword := ""
	page := 1
	if len(args) > 0 {
		keyword = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			printlnFn("Usage: browse [keyword] [page]")
			return nil
		}
		page = n
	}

	result, err := a.catalog.ListProducts(ctx, keyword, page)
	if err != nil {
		return err
	}
	if len(result.Items) == 0 {
		printlnFn("No products found.")
		return nil
	}
	for _, p := range result.Items {
		printlnFn(fmt.Sprintf("%-24s  %-30s  $%.2f  (%d in stock)", p.ID, p.Name, p.Price, p.CountInStock))
	}
	printlnFn(fmt.Sprintf("Page %d of %d", result.Page, result.Pages))
	return nil
}

// ShowProduct prints the details of a single product.
func (a *App) ShowProduct(ctx context.Context, id string) error {
	p, err := a.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	printlnFn(p.Name)
	printlnFn(fmt.Sprintf("Brand: %s  Category: %s", p.Brand, p.Category))
	printlnFn(fmt.Sprintf("Price: $%.2f  In stock: %d", p.Price, p.CountInStock))
	printlnFn(fmt.Sprintf("Rating: %.1f (%d reviews)", p.Rating, p.NumReviews))
	printlnFn(p.Description)
	return nil
}

// Review submits a product review: rating 1..5 plus a comment.
func (a *App) Review(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Please 'login' first.")
		return nil
	}

	rating, err := GetInt(a.reader, "Rating (1-5)", os.Stdout)
	if err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		printlnFn("Rating must be between 1 and 5.")
		return nil
	}
	comment, err := getSimpleText(a.reader, "Comment", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.catalog.SubmitReview(ctx, id, rating, comment); err != nil {
		return a.handleAuthError(ctx, err)
	}
	printlnFn("Review submitted.")
	return nil
}
