package reviews

import (
	"context"
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
	"github.com/Demmynile/hanniefoods/pkg/models"
)

type stubRepository struct {
	reviews        []models.Review
	ratingSet      *float64
	ratingSetFails bool
}

func (s *stubRepository) ListReviews(_ context.Context, productID string) ([]models.Review, error) {
	out := []models.Review{}
	for _, review := range s.reviews {
		if review.ProductID == productID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (s *stubRepository) FindReviewByUser(_ context.Context, productID, userID string) (*models.Review, error) {
	for i := range s.reviews {
		if s.reviews[i].ProductID == productID && s.reviews[i].UserID == userID {
			return &s.reviews[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepository) CreateReview(_ context.Context, review models.Review) (*models.Review, error) {
	review.ID = "review-doc"
	s.reviews = append(s.reviews, review)
	return &review, nil
}

func (s *stubRepository) ListRatings(_ context.Context, productID string) ([]int, error) {
	ratings := []int{}
	for _, review := range s.reviews {
		if review.ProductID == productID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func (s *stubRepository) SetProductRating(_ context.Context, _ string, rating float64) error {
	if s.ratingSetFails {
		return errors.New("patch failed")
	}
	s.ratingSet = &rating
	return nil
}

func newTestService(t *testing.T, repo ReviewRepository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "reviews-test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validSubmission() SubmitReviewInput {
	return SubmitReviewInput{
		ProductID: "p1",
		Rating:    5,
		Comment:   "Delicious, arrived hot and fresh.",
		UserID:    "user-a",
		UserName:  "Ada Obi",
	}
}

func TestSubmitRejectsRatingOutOfBounds(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepository{})
	for _, rating := range []int{0, 6, -1} {
		input := validSubmission()
		input.Rating = rating
		_, err := svc.Submit(context.Background(), input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: unexpected error %v", rating, err)
		}
	}
}

func TestSubmitRejectsCommentOutOfBounds(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepository{})

	short := validSubmission()
	short.Comment = "  too short  "
	if _, err := svc.Submit(context.Background(), short); pkgerrors.As(err) == nil {
		t.Fatalf("expected rejection for short comment, got %v", err)
	}

	long := validSubmission()
	long.Comment = strings.Repeat("a", 1001)
	if _, err := svc.Submit(context.Background(), long); pkgerrors.As(err) == nil {
		t.Fatalf("expected rejection for long comment, got %v", err)
	}

	// 8 characters but 16 bytes; the bound counts characters.
	shortCyrillic := validSubmission()
	shortCyrillic.Comment = "отличный"
	if _, err := svc.Submit(context.Background(), shortCyrillic); pkgerrors.As(err) == nil {
		t.Fatalf("expected rejection for 8-character comment, got %v", err)
	}
}

func TestSubmitCountsCommentCharactersNotBytes(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepository{})

	// 900 characters, ~2700 bytes; within the 1000-character cap.
	input := validSubmission()
	input.Comment = strings.Repeat("很", 900)
	if _, err := svc.Submit(context.Background(), input); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitRequiresUserName(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepository{})
	input := validSubmission()
	input.UserName = "   "
	_, err := svc.Submit(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitRejectsSecondReviewFromSameUser(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{}
	svc := newTestService(t, repo)

	if _, err := svc.Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	again := validSubmission()
	again.Rating = 1
	again.Comment = "Changed my mind entirely about it."
	_, err := svc.Submit(context.Background(), again)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(repo.reviews))
	}
}

func TestSubmitRecomputesAggregate(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{reviews: []models.Review{
		{ProductID: "p1", UserID: "user-b", Rating: 4},
		{ProductID: "p1", UserID: "user-c", Rating: 3},
	}}
	svc := newTestService(t, repo)

	result, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.AggregateUpdateError != nil {
		t.Fatalf("unexpected aggregate error: %v", result.AggregateUpdateError)
	}
	if repo.ratingSet == nil || *repo.ratingSet != 4.0 {
		t.Fatalf("expected aggregate 4.0, got %v", repo.ratingSet)
	}
}

func TestSubmitAggregateFailureDoesNotFailReview(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{ratingSetFails: true}
	svc := newTestService(t, repo)

	result, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit must succeed despite aggregate failure: %v", err)
	}
	if result.Review == nil || result.Review.ID == "" {
		t.Fatal("expected persisted review")
	}
	if result.AggregateUpdateError == nil {
		t.Fatal("expected aggregate failure on the secondary channel")
	}
}

func TestSubmitRequiresIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepository{})
	input := validSubmission()
	input.UserID = ""
	_, err := svc.Submit(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListAveragesAndCounts(t *testing.T) {
	t.Parallel()

	repo := &stubRepository{reviews: []models.Review{
		{ProductID: "p1", UserID: "u1", Rating: 5},
		{ProductID: "p1", UserID: "u2", Rating: 4},
		{ProductID: "p1", UserID: "u3", Rating: 4},
		{ProductID: "other", UserID: "u4", Rating: 1},
	}}
	svc := newTestService(t, repo)

	result, err := svc.List(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.TotalReviews != 3 {
		t.Fatalf("expected 3 reviews, got %d", result.TotalReviews)
	}
	if result.AverageRating != 4.3 {
		t.Fatalf("expected average 4.3, got %v", result.AverageRating)
	}
}

func TestListEmptyProductHasZeroAverage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepository{})
	result, err := svc.List(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.AverageRating != 0 || result.TotalReviews != 0 {
		t.Fatalf("expected zero aggregate, got %+v", result)
	}
}
