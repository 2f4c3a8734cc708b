package products

// CreateProductInput is the admin payload for a new catalog listing.
type CreateProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Price       int      `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryID  string   `json:"categoryId"`
	Images      []string `json:"images"`
	Badge       string   `json:"badge"`
	Description string   `json:"description"`
}

// UpdateProductInput carries a partial admin edit. Nil fields are left
// untouched.
type UpdateProductInput struct {
	Title       *string  `json:"title"`
	Price       *int     `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Images      []string `json:"images"`
	Badge       *string  `json:"badge"`
	Description *string  `json:"description"`
}
