package products

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/models"
)

// ProductRepository defines the content-store operations the service uses.
type ProductRepository interface {
	ListProducts(ctx context.Context, categorySlug string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, doc map[string]any) (string, error)
	PatchProduct(ctx context.Context, id string, fields map[string]any) error
	DeleteProduct(ctx context.Context, id string) error
}

// Service exposes catalog reads plus the admin product operations.
type Service interface {
	ListProducts(ctx context.Context, categorySlug string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	repo ProductRepository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, categorySlug string) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, categorySlug)
}

func (s *service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	return s.repo.GetProductBySlug(ctx, slug)
}

// ListCategories returns the category set de-duplicated by id and slug.
// The CMS allows the same category to be referenced from several product
// documents, so duplicates are dropped here rather than in the query.
func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	raw, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	categories := make([]models.Category, 0, len(raw))
	for _, category := range raw {
		key := category.ID
		if key == "" {
			key = category.Slug
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product title is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and stock must be non-negative")
	}

	doc := map[string]any{
		"title":       input.Title,
		"slug":        map[string]any{"_type": "slug", "current": input.Slug},
		"price":       input.Price,
		"stock":       input.Stock,
		"inStock":     input.Stock > 0,
		"images":      input.Images,
		"badge":       input.Badge,
		"description": input.Description,
		"rating":      0,
	}
	if input.CategoryID != "" {
		doc["category"] = map[string]any{"_type": "reference", "_ref": input.CategoryID}
	}

	id, err := s.repo.CreateProduct(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, id)
}

// UpdateProduct applies a partial edit. Editing stock recomputes the
// derived inStock flag so listings stay consistent.
func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product title cannot be empty")
		}
		fields["title"] = *input.Title
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		fields["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
		}
		fields["stock"] = *input.Stock
		fields["inStock"] = *input.Stock > 0
	}
	if input.Images != nil {
		fields["images"] = input.Images
	}
	if input.Badge != nil {
		fields["badge"] = *input.Badge
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.PatchProduct(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, id)
}
