package orders

// CustomerInput carries the contact fields captured at checkout.
type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// OrderItemInput is one line of the order payload, already frozen on the
// client at checkout time.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Price     int    `json:"price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderInput is the reconciliation payload sent after a successful
// payment callback.
type CreateOrderInput struct {
	OrderNumber       string           `json:"orderNumber" validate:"required"`
	Customer          CustomerInput    `json:"customer" validate:"required"`
	Items             []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount       *int             `json:"totalAmount" validate:"required,gte=0"`
	PaystackReference string           `json:"paystackReference" validate:"required"`
	UserID            string           `json:"-"`
}

// UpdateOrderStatusInput is the admin payload for order lifecycle edits.
type UpdateOrderStatusInput struct {
	OrderStatus   *string `json:"orderStatus"`
	PaymentStatus *string `json:"paymentStatus"`
}
