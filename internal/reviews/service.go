package reviews

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
	"github.com/Demmynile/hanniefoods/pkg/models"
)

const (
	minRating        = 1
	maxRating        = 5
	minCommentLength = 10
	maxCommentLength = 1000
)

// ReviewRepository defines the persistence operations the service needs.
type ReviewRepository interface {
	ListReviews(ctx context.Context, productID string) ([]models.Review, error)
	FindReviewByUser(ctx context.Context, productID, userID string) (*models.Review, error)
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
	ListRatings(ctx context.Context, productID string) ([]int, error)
	SetProductRating(ctx context.Context, productID string, rating float64) error
}

// ListResult is the public read for a product's reviews.
type ListResult struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	TotalReviews  int             `json:"totalReviews"`
}

// SubmitReviewInput carries one authenticated review submission.
type SubmitReviewInput struct {
	ProductID string
	Rating    int
	Comment   string
	UserID    string
	UserName  string
	UserEmail string
}

// SubmitResult pairs the created review with the outcome of the
// best-effort aggregate recompute. AggregateUpdateError being non-nil
// does not invalidate the review itself.
type SubmitResult struct {
	Review               *models.Review
	AggregateUpdateError error
}

// Service exposes the review read and submit paths.
type Service interface {
	List(ctx context.Context, productID string) (*ListResult, error)
	Submit(ctx context.Context, input SubmitReviewInput) (*SubmitResult, error)
}

type service struct {
	repo ReviewRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a review service backed by the provided repository.
func NewService(repo ReviewRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, productID string) (*ListResult, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	reviews, err := s.repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}

	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, review.Rating)
	}

	return &ListResult{
		Reviews:       reviews,
		AverageRating: averageRating(ratings),
		TotalReviews:  len(reviews),
	}, nil
}

// Submit validates and persists the review, then recomputes the
// product's denormalized rating. The recompute is best-effort: its
// failure is logged and returned on the secondary channel while the
// review stands.
func (s *service) Submit(ctx context.Context, input SubmitReviewInput) (*SubmitResult, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < minRating || input.Rating > maxRating {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	// Bounds are in characters, not bytes, so multi-byte scripts count
	// the same as ASCII.
	if n := utf8.RuneCountInString(comment); n < minCommentLength || n > maxCommentLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment must be between 10 and 1000 characters")
	}
	if strings.TrimSpace(input.UserName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user name is required")
	}

	existing, err := s.repo.FindReviewByUser(ctx, input.ProductID, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product")
	}

	created, err := s.repo.CreateReview(ctx, models.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		UserName:  input.UserName,
		UserEmail: input.UserEmail,
		Rating:    input.Rating,
		Comment:   comment,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Review: created}
	if err := s.recomputeAggregate(ctx, input.ProductID); err != nil {
		s.logg.Warn(s.logg.WithProductID(ctx, input.ProductID),
			"rating aggregate update failed: "+err.Error())
		result.AggregateUpdateError = err
	}
	return result, nil
}

func (s *service) recomputeAggregate(ctx context.Context, productID string) error {
	ratings, err := s.repo.ListRatings(ctx, productID)
	if err != nil {
		return err
	}
	return s.repo.SetProductRating(ctx, productID, averageRating(ratings))
}

// averageRating is the mean rounded to one decimal, 0 for no reviews.
func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
