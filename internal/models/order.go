package models

import "time"

// OrderItem is one purchased line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"qty"`
}

// Order is the read model returned by the order endpoint.
type Order struct {
	ID              string      `json:"_id"`
	Items           []OrderItem `json:"orderItems"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	ItemsPrice      float64     `json:"itemsPrice"`
	ShippingPrice   float64     `json:"shippingPrice"`
	TaxPrice        float64     `json:"taxPrice"`
	TotalPrice      float64     `json:"totalPrice"`
	IsPaid          bool        `json:"isPaid"`
	IsDelivered     bool        `json:"isDelivered"`
	CreatedAt       time.Time   `json:"createdAt"`
}
