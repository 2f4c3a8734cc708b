package products

import (
	"context"
	"strings"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/models"
	"github.com/Demmynile/hanniefoods/pkg/sanity"
)

const productProjection = `{
  "id": _id,
  title,
  "slug": slug.current,
  price,
  stock,
  inStock,
  "category": category->{"id": _id, title, "slug": slug.current},
  "images": images[].asset->url,
  rating,
  badge,
  description
}`

// Repository reads and mutates product documents in the content store.
type Repository struct {
	store *sanity.Client
}

// NewRepository builds a repository tied to the provided store client.
func NewRepository(store *sanity.Client) *Repository {
	return &Repository{store: store}
}

// ListProducts returns the full catalog ordered by title. An optional
// category slug narrows the result.
func (r *Repository) ListProducts(ctx context.Context, categorySlug string) ([]models.Product, error) {
	query := `*[_type == "product"] | order(title asc) ` + productProjection
	params := map[string]any{}
	if slug := strings.TrimSpace(categorySlug); slug != "" {
		query = `*[_type == "product" && category->slug.current == $slug] | order(title asc) ` + productProjection
		params["slug"] = slug
	}

	var products []models.Product
	if err := r.store.Fetch(ctx, query, params, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProduct loads one product by document id.
func (r *Repository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product *models.Product
	query := `*[_type == "product" && _id == $id][0] ` + productProjection
	if err := r.store.Fetch(ctx, query, map[string]any{"id": id}, &product); err != nil {
		return nil, err
	}
	if product == nil || product.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// GetProductBySlug loads one product by its URL slug.
func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product *models.Product
	query := `*[_type == "product" && slug.current == $slug][0] ` + productProjection
	if err := r.store.Fetch(ctx, query, map[string]any{"slug": slug}, &product); err != nil {
		return nil, err
	}
	if product == nil || product.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

// ListCategories returns all category documents ordered by title.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	query := `*[_type == "category"] | order(title asc) {"id": _id, title, "slug": slug.current}`
	if err := r.store.Fetch(ctx, query, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// CreateProduct writes a new product document and returns its id.
func (r *Repository) CreateProduct(ctx context.Context, doc map[string]any) (string, error) {
	doc["_type"] = "product"
	return r.store.Create(ctx, doc)
}

// PatchProduct applies a partial update to the product document.
func (r *Repository) PatchProduct(ctx context.Context, id string, fields map[string]any) error {
	return r.store.Patch(id).Set(fields).Commit(ctx)
}

// DeleteProduct removes the product document.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
