package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	reviewsvc "github.com/Demmynile/hanniefoods/internal/reviews"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/models"
)

type stubReviewService struct {
	list   *reviewsvc.ListResult
	result *reviewsvc.SubmitResult
	err    error

	lastInput reviewsvc.SubmitReviewInput
}

func (s *stubReviewService) List(ctx context.Context, productID string) (*reviewsvc.ListResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubReviewService) Submit(ctx context.Context, input reviewsvc.SubmitReviewInput) (*reviewsvc.SubmitResult, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func reviewRouter(svc reviewsvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/reviews/{productId}", ReviewsList(svc, nil))
	r.Post("/reviews/{productId}", ReviewSubmit(svc, nil))
	return r
}

func TestReviewsListSuccess(t *testing.T) {
	svc := &stubReviewService{list: &reviewsvc.ListResult{
		Reviews:       []models.Review{{ID: "rev-1", Rating: 4}},
		AverageRating: 4.0,
		TotalReviews:  1,
	}}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviews/prod-1", nil)
	reviewRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data reviewsvc.ListResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalReviews != 1 || envelope.Data.AverageRating != 4.0 {
		t.Fatalf("unexpected aggregate: %+v", envelope.Data)
	}
}

func TestReviewSubmitRequiresIdentity(t *testing.T) {
	svc := &stubReviewService{}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reviews/prod-1", nil)
	reviewRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestReviewSubmitCreatedWithRefreshedList(t *testing.T) {
	svc := &stubReviewService{
		result: &reviewsvc.SubmitResult{Review: &models.Review{ID: "rev-2", Rating: 5}},
		list: &reviewsvc.ListResult{
			Reviews:       []models.Review{{ID: "rev-2", Rating: 5}, {ID: "rev-1", Rating: 4}},
			AverageRating: 4.5,
			TotalReviews:  2,
		},
	}

	resp := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/reviews/prod-1", []byte(`{"rating":5,"comment":"best jollof kit I have tried"}`))
	reviewRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastInput.ProductID != "prod-1" || svc.lastInput.Rating != 5 {
		t.Fatalf("unexpected submit input: %+v", svc.lastInput)
	}
	if svc.lastInput.UserID != "user-1" || svc.lastInput.UserEmail != "ada@example.com" {
		t.Fatalf("identity not propagated: %+v", svc.lastInput)
	}

	var envelope struct {
		Data struct {
			Review        models.Review   `json:"review"`
			Reviews       []models.Review `json:"reviews"`
			AverageRating float64         `json:"averageRating"`
			TotalReviews  int             `json:"totalReviews"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Review.ID != "rev-2" {
		t.Fatalf("unexpected review: %+v", envelope.Data.Review)
	}
	if envelope.Data.TotalReviews != 2 || envelope.Data.AverageRating != 4.5 {
		t.Fatalf("unexpected aggregate: %+v", envelope.Data)
	}
}

func TestReviewSubmitDuplicateConflict(t *testing.T) {
	svc := &stubReviewService{err: pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")}

	resp := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/reviews/prod-1", []byte(`{"rating":4,"comment":"still a great jollof kit"}`))
	reviewRouter(svc).ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}
