// Package api defines the storefront backend endpoints consumed by the
// client (auth, catalog, orders) and an HTTP/JSON implementation.
//
// The interfaces are the seam between the state layer and the network:
// services and the CLI depend on them, tests substitute fakes.
package api

import (
	"context"

	"storefront/internal/models"
)

// ProductPage is one page of catalog results.
type ProductPage struct {
	Items []models.Product `json:"products"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

// OrderDraft is the payload sent to create an order. IdempotencyKey is a
// client-generated UUID so a retried submission cannot create a second order.
type OrderDraft struct {
	IdempotencyKey  string             `json:"idempotencyKey"`
	Items           []models.OrderItem `json:"orderItems"`
	ShippingAddress models.Address     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// AuthAPI is the authentication endpoint.
//
// Contract: a failed call leaves the caller's session untouched; the error is
// surfaced and never retried here.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, name, email, password string) (models.User, error)
}

// CatalogAPI is the product catalog endpoint.
type CatalogAPI interface {
	ListProducts(ctx context.Context, keyword string, page int) (ProductPage, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	SubmitReview(ctx context.Context, productID string, rating int, comment string) error
}

// OrderAPI is the order endpoint.
type OrderAPI interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (models.Order, error)
	ListMine(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
}
