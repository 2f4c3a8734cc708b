package orders

import (
	"context"
	"time"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/models"
	"github.com/Demmynile/hanniefoods/pkg/sanity"
)

const orderProjection = `{
  "id": _id,
  orderNumber,
  userId,
  customerName,
  customerEmail,
  customerPhone,
  "items": items[]{productId, title, price, quantity},
  totalAmount,
  paymentStatus,
  orderStatus,
  paystackReference,
  createdAt
}`

// Repository persists order documents and touches product stock in the
// content store. Each stock write patches a single document; there is no
// multi-document transaction available here.
type Repository struct {
	store *sanity.Client
}

// NewRepository builds a repository tied to the provided store client.
func NewRepository(store *sanity.Client) *Repository {
	return &Repository{store: store}
}

// GetProductStock reads the live stock counter for one product.
func (r *Repository) GetProductStock(ctx context.Context, productID string) (int, error) {
	var result *struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}
	query := `*[_type == "product" && _id == $id][0]{"id": _id, stock}`
	if err := r.store.Fetch(ctx, query, map[string]any{"id": productID}, &result); err != nil {
		return 0, err
	}
	if result == nil || result.ID == "" {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"productId": productID})
	}
	return result.Stock, nil
}

// SetProductStock patches the stock counter and the derived inStock flag
// on one product document.
func (r *Repository) SetProductStock(ctx context.Context, productID string, stock int) error {
	return r.store.Patch(productID).Set(map[string]any{
		"stock":   stock,
		"inStock": stock > 0,
	}).Commit(ctx)
}

// CreateOrder writes the order document and returns it with the store id.
func (r *Repository) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	items := make([]map[string]any, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]any{
			"productId": item.ProductID,
			"title":     item.Title,
			"price":     item.Price,
			"quantity":  item.Quantity,
		})
	}

	doc := map[string]any{
		"_type":             "order",
		"orderNumber":       order.OrderNumber,
		"customerName":      order.CustomerName,
		"customerEmail":     order.CustomerEmail,
		"items":             items,
		"totalAmount":       order.TotalAmount,
		"paymentStatus":     string(order.PaymentStatus),
		"orderStatus":       string(order.OrderStatus),
		"paystackReference": order.PaystackReference,
		"createdAt":         order.CreatedAt.UTC().Format(time.RFC3339),
	}
	if order.UserID != "" {
		doc["userId"] = order.UserID
	}
	if order.CustomerPhone != "" {
		doc["customerPhone"] = order.CustomerPhone
	}

	id, err := r.store.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	order.ID = id
	return &order, nil
}

// FindOrderByReference returns the order holding the payment reference,
// or nil when none exists.
func (r *Repository) FindOrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order *models.Order
	query := `*[_type == "order" && paystackReference == $ref][0] ` + orderProjection
	if err := r.store.Fetch(ctx, query, map[string]any{"ref": reference}, &order); err != nil {
		return nil, err
	}
	if order == nil || order.ID == "" {
		return nil, nil
	}
	return order, nil
}

// ListOrdersForUser returns the caller's orders, newest first.
func (r *Repository) ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	query := `*[_type == "order" && userId == $userId] | order(createdAt desc) ` + orderProjection
	if err := r.store.Fetch(ctx, query, map[string]any{"userId": userID}, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// ListAllOrders returns every order, newest first. Admin surface only.
func (r *Repository) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	query := `*[_type == "order"] | order(createdAt desc) ` + orderProjection
	if err := r.store.Fetch(ctx, query, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder loads one order by document id.
func (r *Repository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order *models.Order
	query := `*[_type == "order" && _id == $id][0] ` + orderProjection
	if err := r.store.Fetch(ctx, query, map[string]any{"id": id}, &order); err != nil {
		return nil, err
	}
	if order == nil || order.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// UpdateOrderStatus patches the admin-editable lifecycle fields.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, fields map[string]any) error {
	return r.store.Patch(id).Set(fields).Commit(ctx)
}
