package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Demmynile/hanniefoods/pkg/enums"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
	"github.com/Demmynile/hanniefoods/pkg/metrics"
	"github.com/Demmynile/hanniefoods/pkg/models"
)

// OrderRepository defines the persistence operations the service needs.
type OrderRepository interface {
	GetProductStock(ctx context.Context, productID string) (int, error)
	SetProductStock(ctx context.Context, productID string, stock int) error
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	FindOrderByReference(ctx context.Context, reference string) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, fields map[string]any) error
}

// Service is the single point where a successful payment becomes a
// durable order and inventory is debited.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, input UpdateOrderStatusInput) (*models.Order, error)
}

type service struct {
	repo    OrderRepository
	guard   ReferenceGuard
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the order service. The guard and metrics are
// optional; a nil guard disables the duplicate-reference reservation.
func NewService(repo OrderRepository, guard ReferenceGuard, checkoutMetrics *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		guard:   guard,
		metrics: checkoutMetrics,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// CreateOrder validates the payload, walks the line items sequentially
// decrementing stock, and persists the order document. Stock checks are
// strictly in input order; an abort part way through does NOT roll back
// decrements already committed for earlier items. The store offers no
// multi-document transaction, so this stays a best-effort guard rather
// than a transactional one.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validateCreateOrder(input); err != nil {
		s.metrics.IncOrder("validation_error")
		return nil, err
	}

	ctx = s.logg.WithOrderNumber(ctx, input.OrderNumber)

	if err := s.rejectDuplicateReference(ctx, input.PaystackReference); err != nil {
		s.metrics.IncOrder("duplicate")
		return nil, err
	}

	for i, item := range input.Items {
		stock, err := s.repo.GetProductStock(ctx, item.ProductID)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				s.metrics.IncOrder("product_not_found")
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product in order not found").
					WithDetails(map[string]any{"productId": item.ProductID, "title": item.Title, "position": i})
			}
			s.metrics.IncOrder("dependency_error")
			return nil, err
		}

		newStock := stock - item.Quantity
		if newStock < 0 {
			s.metrics.IncOrder("insufficient_stock")
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for "+item.Title).
				WithDetails(map[string]any{
					"productId": item.ProductID,
					"title":     item.Title,
					"requested": item.Quantity,
					"available": stock,
				})
		}

		if err := s.repo.SetProductStock(ctx, item.ProductID, newStock); err != nil {
			s.metrics.IncOrder("dependency_error")
			return nil, err
		}
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.repo.CreateOrder(ctx, models.Order{
		OrderNumber:       input.OrderNumber,
		UserID:            input.UserID,
		CustomerName:      input.Customer.Name,
		CustomerEmail:     input.Customer.Email,
		CustomerPhone:     input.Customer.Phone,
		Items:             items,
		TotalAmount:       *input.TotalAmount,
		PaymentStatus:     enums.PaymentStatusSuccess,
		OrderStatus:       enums.OrderStatusPending,
		PaystackReference: input.PaystackReference,
		CreatedAt:         s.now(),
	})
	if err != nil {
		s.metrics.IncOrder("dependency_error")
		return nil, err
	}

	s.metrics.IncOrder("created")
	s.logg.Info(ctx, "order created")
	return created, nil
}

// rejectDuplicateReference is the pre-check that makes a retried success
// callback safe: first a lookup for an already-persisted order carrying
// the reference, then a Redis reservation covering the window before the
// order document lands. A guard backend failure is logged and skipped so
// Redis downtime cannot block checkout.
func (s *service) rejectDuplicateReference(ctx context.Context, reference string) error {
	existing, err := s.repo.FindOrderByReference(ctx, reference)
	if err != nil {
		return err
	}
	if existing != nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "an order already exists for this payment reference").
			WithDetails(map[string]any{"orderNumber": existing.OrderNumber})
	}

	if s.guard == nil {
		return nil
	}
	acquired, err := s.guard.Reserve(ctx, reference)
	if err != nil {
		s.logg.Warn(ctx, "payment reference reservation unavailable: "+err.Error())
		return nil
	}
	if !acquired {
		return pkgerrors.New(pkgerrors.CodeConflict, "this payment reference is already being processed")
	}
	return nil
}

// ListOrdersForUser returns only the caller's orders, newest first.
func (s *service) ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return s.repo.ListOrdersForUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListAllOrders(ctx)
}

// UpdateOrderStatus applies an admin lifecycle edit and returns the
// refreshed order.
func (s *service) UpdateOrderStatus(ctx context.Context, id string, input UpdateOrderStatusInput) (*models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	fields := map[string]any{}
	if input.OrderStatus != nil {
		status, err := enums.ParseOrderStatus(*input.OrderStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
		}
		fields["orderStatus"] = string(status)
	}
	if input.PaymentStatus != nil {
		status, err := enums.ParsePaymentStatus(*input.PaymentStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		fields["paymentStatus"] = string(status)
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no status fields to update")
	}

	if _, err := s.repo.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetOrder(ctx, id)
}

func validateCreateOrder(input CreateOrderInput) error {
	if strings.TrimSpace(input.OrderNumber) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if strings.TrimSpace(input.Customer.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Customer.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if input.TotalAmount == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "total amount is required")
	}
	if strings.TrimSpace(input.PaystackReference) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment reference is required")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item product id is required")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item quantity must be positive")
		}
	}
	return nil
}
