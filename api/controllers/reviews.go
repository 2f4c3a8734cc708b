package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Demmynile/hanniefoods/api/middleware"
	"github.com/Demmynile/hanniefoods/api/responses"
	"github.com/Demmynile/hanniefoods/api/validators"
	reviewsvc "github.com/Demmynile/hanniefoods/internal/reviews"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
)

type submitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

// ReviewsList returns a product's reviews with the derived average. No
// identity is required to read.
func ReviewsList(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		result, err := svc.List(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ReviewSubmit creates a review for the authenticated user and responds
// with the refreshed review list.
func ReviewSubmit(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload submitReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), reviewsvc.SubmitReviewInput{
			ProductID: productID,
			Rating:    payload.Rating,
			Comment:   payload.Comment,
			UserID:    userID,
			UserName:  middleware.UserNameFromContext(r.Context()),
			UserEmail: middleware.UserEmailFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.List(r.Context(), productID)
		if err != nil {
			// The review exists even when the refreshed list read fails.
			responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"review": result.Review})
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"review":        result.Review,
			"reviews":       listing.Reviews,
			"averageRating": listing.AverageRating,
			"totalReviews":  listing.TotalReviews,
		})
	}
}
