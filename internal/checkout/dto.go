package checkout

// SessionInput carries the customer contact fields for one checkout
// attempt.
type SessionInput struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone"`
}

// SessionItem is one cart line frozen into the session metadata.
type SessionItem struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// SessionMetadata travels with the gateway session so the payment can be
// traced back to a concrete cart snapshot.
type SessionMetadata struct {
	OrderNumber  string        `json:"orderNumber"`
	CustomerName string        `json:"customerName"`
	Items        []SessionItem `json:"items"`
}

// Session is the widget configuration handed back to the client. The
// widget itself opens on the customer's device; the server never sees
// card data.
type Session struct {
	PublicKey      string          `json:"publicKey"`
	CustomerEmail  string          `json:"customerEmail"`
	AmountSubunits int64           `json:"amountSubunits"`
	Currency       string          `json:"currency"`
	Reference      string          `json:"reference"`
	Metadata       SessionMetadata `json:"metadata"`
}

// ConfirmInput is the success-callback payload the client relays after
// the widget reports a completed payment.
type ConfirmInput struct {
	Reference     string `json:"reference" validate:"required"`
	Status        string `json:"status" validate:"required"`
	OrderNumber   string `json:"orderNumber" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone"`
}

// CancelNotice is the neutral outcome for a user-closed widget. The cart
// is left untouched so the customer can retry.
type CancelNotice struct {
	Message string `json:"message"`
}
