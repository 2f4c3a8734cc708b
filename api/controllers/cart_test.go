package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Demmynile/hanniefoods/api/middleware"
	cartsvc "github.com/Demmynile/hanniefoods/internal/cart"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/models"
	"github.com/shopspring/decimal"
)

type stubCartService struct {
	snapshot *cartsvc.Snapshot
	err      error

	lastProductID string
	lastQuantity  int
}

func (s *stubCartService) Get(ctx context.Context, ownerID string) (*cartsvc.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*cartsvc.Snapshot, error) {
	s.lastProductID = productID
	s.lastQuantity = quantity
	return s.snapshot, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*cartsvc.Snapshot, error) {
	s.lastProductID = productID
	s.lastQuantity = quantity
	return s.snapshot, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, ownerID, productID string) (*cartsvc.Snapshot, error) {
	s.lastProductID = productID
	return s.snapshot, s.err
}

func (s *stubCartService) Clear(ctx context.Context, ownerID string) (*cartsvc.Snapshot, error) {
	return s.snapshot, s.err
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithUser(req.Context(), "user-1", "ada@example.com", "Ada"))
}

func TestCartFetchSuccess(t *testing.T) {
	snapshot := &cartsvc.Snapshot{
		Items: []cartsvc.Item{{
			Product:  models.Product{ID: "prod-1", Title: "Jollof Rice Kit", Price: 2500, Stock: 5, InStock: true},
			Quantity: 2,
		}},
		Total: decimal.NewFromInt(5000),
		Count: 2,
	}
	handler := CartFetch(&stubCartService{snapshot: snapshot}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 2 {
		t.Fatalf("unexpected count: %d", envelope.Data.Count)
	}
	if len(envelope.Data.Items) != 1 || envelope.Data.Items[0].Product.ID != "prod-1" {
		t.Fatalf("unexpected items: %+v", envelope.Data.Items)
	}
}

func TestCartFetchMissingUserContext(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddItemPassesPayload(t *testing.T) {
	svc := &stubCartService{snapshot: &cartsvc.Snapshot{Clamped: true}}
	handler := CartAddItem(svc, nil)

	body := []byte(`{"productId":"prod-1","quantity":6}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastProductID != "prod-1" || svc.lastQuantity != 6 {
		t.Fatalf("unexpected call: %s qty %d", svc.lastProductID, svc.lastQuantity)
	}

	var envelope struct {
		Data cartsvc.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Clamped {
		t.Fatal("expected clamped flag in response")
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	handler := CartAddItem(&stubCartService{snapshot: &cartsvc.Snapshot{}}, nil)

	body := []byte(`{"productId":"prod-1","quantity":1,"bogus":true}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartFetchServiceError(t *testing.T) {
	handler := CartFetch(&stubCartService{err: pkgerrors.New(pkgerrors.CodeDependency, "cart store unavailable")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
