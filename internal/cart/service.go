package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/models"
)

type productLoader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// Snapshot is the cart view returned to callers after every operation.
type Snapshot struct {
	Items   []Item          `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Clamped bool            `json:"clamped"`
}

// Service exposes the cart operations for one owner at a time.
type Service interface {
	Get(ctx context.Context, ownerID string) (*Snapshot, error)
	AddItem(ctx context.Context, ownerID, productID string, quantity int) (*Snapshot, error)
	UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*Snapshot, error)
	RemoveItem(ctx context.Context, ownerID, productID string) (*Snapshot, error)
	Clear(ctx context.Context, ownerID string) (*Snapshot, error)
}

type service struct {
	storage  Storage
	products productLoader
}

// NewService builds a cart service backed by the provided storage and
// product loader.
func NewService(storage Storage, products productLoader) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{storage: storage, products: products}, nil
}

func (s *service) Get(ctx context.Context, ownerID string) (*Snapshot, error) {
	state, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return snapshot(state, false), nil
}

func (s *service) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	state, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	next, clamped := AddItem(state, *product, quantity)
	if err := s.storage.Save(ctx, ownerID, next); err != nil {
		return nil, err
	}
	return snapshot(next, clamped), nil
}

func (s *service) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	state, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	next, clamped := UpdateQuantity(state, productID, quantity)
	if err := s.storage.Save(ctx, ownerID, next); err != nil {
		return nil, err
	}
	return snapshot(next, clamped), nil
}

func (s *service) RemoveItem(ctx context.Context, ownerID, productID string) (*Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	state, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	next := RemoveItem(state, productID)
	if err := s.storage.Save(ctx, ownerID, next); err != nil {
		return nil, err
	}
	return snapshot(next, false), nil
}

func (s *service) Clear(ctx context.Context, ownerID string) (*Snapshot, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart owner is required")
	}
	if err := s.storage.Clear(ctx, ownerID); err != nil {
		return nil, err
	}
	return snapshot(State{}, false), nil
}

func (s *service) load(ctx context.Context, ownerID string) (State, error) {
	if strings.TrimSpace(ownerID) == "" {
		return State{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart owner is required")
	}
	return s.storage.Load(ctx, ownerID)
}

func snapshot(state State, clamped bool) *Snapshot {
	items := state.Items
	if items == nil {
		items = []Item{}
	}
	return &Snapshot{
		Items:   items,
		Total:   Total(state),
		Count:   Count(state),
		Clamped: clamped,
	}
}
