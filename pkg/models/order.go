package models

import (
	"time"

	"github.com/Demmynile/hanniefoods/pkg/enums"
)

// OrderItem is a frozen copy of a cart line at the moment the order was
// created. It deliberately carries its own title and price so later
// catalog edits never rewrite order history.
type OrderItem struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is the immutable record produced by a successful payment.
// Admin status updates are the only mutations allowed after creation.
type Order struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	UserID            string              `json:"userId,omitempty"`
	CustomerName      string              `json:"customerName"`
	CustomerEmail     string              `json:"customerEmail"`
	CustomerPhone     string              `json:"customerPhone,omitempty"`
	Items             []OrderItem         `json:"items"`
	TotalAmount       int                 `json:"totalAmount"`
	PaymentStatus     enums.PaymentStatus `json:"paymentStatus"`
	OrderStatus       enums.OrderStatus   `json:"orderStatus"`
	PaystackReference string              `json:"paystackReference"`
	CreatedAt         time.Time           `json:"createdAt"`
}
