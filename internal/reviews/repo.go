package reviews

import (
	"context"
	"time"

	"github.com/Demmynile/hanniefoods/pkg/models"
	"github.com/Demmynile/hanniefoods/pkg/sanity"
)

const reviewProjection = `{
  "id": _id,
  "productId": product._ref,
  userId,
  userName,
  userEmail,
  rating,
  comment,
  verified,
  createdAt
}`

// Repository persists review documents and the product rating aggregate.
type Repository struct {
	store *sanity.Client
}

// NewRepository builds a repository tied to the provided store client.
func NewRepository(store *sanity.Client) *Repository {
	return &Repository{store: store}
}

// ListReviews returns a product's reviews, newest first.
func (r *Repository) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	query := `*[_type == "review" && product._ref == $productId] | order(createdAt desc) ` + reviewProjection
	if err := r.store.Fetch(ctx, query, map[string]any{"productId": productID}, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// FindReviewByUser returns the user's review for the product, or nil.
func (r *Repository) FindReviewByUser(ctx context.Context, productID, userID string) (*models.Review, error) {
	var review *models.Review
	query := `*[_type == "review" && product._ref == $productId && userId == $userId][0] ` + reviewProjection
	params := map[string]any{"productId": productID, "userId": userID}
	if err := r.store.Fetch(ctx, query, params, &review); err != nil {
		return nil, err
	}
	if review == nil || review.ID == "" {
		return nil, nil
	}
	return review, nil
}

// CreateReview writes the review document and returns it with the id.
func (r *Repository) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	doc := map[string]any{
		"_type":     "review",
		"product":   map[string]any{"_type": "reference", "_ref": review.ProductID},
		"userId":    review.UserID,
		"userName":  review.UserName,
		"rating":    review.Rating,
		"comment":   review.Comment,
		"verified":  review.Verified,
		"createdAt": review.CreatedAt.UTC().Format(time.RFC3339),
	}
	if review.UserEmail != "" {
		doc["userEmail"] = review.UserEmail
	}

	id, err := r.store.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	review.ID = id
	return &review, nil
}

// ListRatings returns just the rating values for a product's reviews.
func (r *Repository) ListRatings(ctx context.Context, productID string) ([]int, error) {
	var ratings []int
	query := `*[_type == "review" && product._ref == $productId].rating`
	if err := r.store.Fetch(ctx, query, map[string]any{"productId": productID}, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// SetProductRating patches the denormalized aggregate on the product.
func (r *Repository) SetProductRating(ctx context.Context, productID string, rating float64) error {
	return r.store.Patch(productID).Set(map[string]any{"rating": rating}).Commit(ctx)
}
