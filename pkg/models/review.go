package models

import "time"

// Review is a customer rating on a product. At most one review exists
// per (user, product) pair.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}
