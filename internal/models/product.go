// Package models defines the data shapes shared by the storefront client:
// catalog products, cart state, the authenticated user, and orders.
package models

// Product is a catalog product as returned by the catalog endpoint.
type Product struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Rating       float64 `json:"rating"`
	NumReviews   int     `json:"numReviews"`
}
