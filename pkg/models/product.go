package models

// Category is the CMS-owned grouping a product belongs to.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Product is the CMS-owned storefront listing. The cart and order core
// only ever read it; all writes go through the admin back-office.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Price       int      `json:"price"`
	Stock       int      `json:"stock"`
	InStock     bool     `json:"inStock"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating"`
	Badge       string   `json:"badge,omitempty"`
	Description string   `json:"description"`
}

// Available reports whether the product can currently be added to a cart.
func (p Product) Available() bool {
	return p.InStock && p.Stock > 0
}
