package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Demmynile/hanniefoods/internal/cart"
	"github.com/Demmynile/hanniefoods/internal/orders"
	"github.com/Demmynile/hanniefoods/pkg/config"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
	"github.com/Demmynile/hanniefoods/pkg/metrics"
	"github.com/Demmynile/hanniefoods/pkg/models"
	"github.com/Demmynile/hanniefoods/pkg/paystack"
)

type cartStore interface {
	Get(ctx context.Context, ownerID string) (*cart.Snapshot, error)
	Clear(ctx context.Context, ownerID string) (*cart.Snapshot, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error)
}

type gateway interface {
	NewReference() string
	Probe(ctx context.Context) error
	VerifyTransaction(ctx context.Context, reference string) (*paystack.Transaction, error)
}

type availabilityState int

const (
	availabilityUnknown availabilityState = iota
	availabilityReady
	availabilityDown
)

// Service turns cart contents into gateway sessions and routes the three
// checkout outcomes: success, user cancel, and hard failure.
type Service interface {
	CreateSession(ctx context.Context, ownerID string, input SessionInput) (*Session, error)
	ConfirmPayment(ctx context.Context, ownerID string, input ConfirmInput) (*models.Order, error)
	Cancel(ctx context.Context, ownerID string) *CancelNotice
	RetryAvailability(ctx context.Context) error
}

type service struct {
	cfg     config.PaystackConfig
	carts   cartStore
	orders  orderCreator
	gateway gateway
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger

	mu    sync.Mutex
	state availabilityState
}

// NewService builds the checkout initiator. Metrics are optional.
func NewService(cfg config.PaystackConfig, carts cartStore, orderSvc orderCreator, gw gateway, checkoutMetrics *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	if gw == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cfg:     cfg,
		carts:   carts,
		orders:  orderSvc,
		gateway: gw,
		metrics: checkoutMetrics,
		logg:    logg,
	}, nil
}

// CreateSession checks the preconditions and builds the widget config for
// one payment attempt. No server-side state is created; the reference
// alone correlates the attempt until an order exists.
func (s *service) CreateSession(ctx context.Context, ownerID string, input SessionInput) (*Session, error) {
	if err := s.ensureAvailable(ctx); err != nil {
		s.metrics.IncSession("unavailable")
		return nil, err
	}

	if strings.TrimSpace(input.CustomerEmail) == "" {
		s.metrics.IncSession("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required for checkout")
	}
	if strings.TrimSpace(s.cfg.PublicKey) == "" {
		s.metrics.IncSession("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment gateway is not configured")
	}

	snap, err := s.carts.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		s.metrics.IncSession("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]SessionItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, SessionItem{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
	}

	session := &Session{
		PublicKey:      s.cfg.PublicKey,
		CustomerEmail:  input.CustomerEmail,
		AmountSubunits: subunitAmount(snap.Total, s.cfg.MinorUnitFactor),
		Currency:       s.cfg.CurrencyCode,
		Reference:      s.gateway.NewReference(),
		Metadata: SessionMetadata{
			OrderNumber:  newOrderNumber(),
			CustomerName: input.CustomerName,
			Items:        items,
		},
	}

	s.metrics.IncSession("initiated")
	s.logg.Info(s.logg.WithField(ctx, "reference", session.Reference), "checkout session created")
	return session, nil
}

// ConfirmPayment is the success route. Only the designated success
// status triggers reconciliation; anything else is surfaced as a failed
// payment without touching stock or orders.
func (s *service) ConfirmPayment(ctx context.Context, ownerID string, input ConfirmInput) (*models.Order, error) {
	if !strings.EqualFold(input.Status, paystack.StatusSuccess) {
		s.metrics.IncSession("failed")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment was not successful").
			WithDetails(map[string]any{"status": input.Status})
	}

	tx, err := s.gateway.VerifyTransaction(ctx, input.Reference)
	if err != nil {
		s.metrics.IncSession("failed")
		return nil, err
	}
	if !tx.Succeeded() {
		s.metrics.IncSession("failed")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment could not be verified as successful").
			WithDetails(map[string]any{"gatewayStatus": tx.Status})
	}

	snap, err := s.carts.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]orders.OrderItemInput, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, orders.OrderItemInput{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
	}
	total := int(snap.Total.IntPart())

	order, err := s.orders.CreateOrder(ctx, orders.CreateOrderInput{
		OrderNumber: input.OrderNumber,
		Customer: orders.CustomerInput{
			Name:  input.CustomerName,
			Email: input.CustomerEmail,
			Phone: input.CustomerPhone,
		},
		Items:             items,
		TotalAmount:       &total,
		PaystackReference: input.Reference,
		UserID:            ownerID,
	})
	if err != nil {
		return nil, err
	}

	// The order stands even if clearing the cart fails; the client can
	// clear locally on the confirmation screen.
	if _, err := s.carts.Clear(ctx, ownerID); err != nil {
		s.logg.Warn(ctx, "cart clear after order failed: "+err.Error())
	}

	s.metrics.IncSession("success")
	return order, nil
}

// Cancel is the neutral route for a user-closed widget.
func (s *service) Cancel(_ context.Context, _ string) *CancelNotice {
	s.metrics.IncSession("cancelled")
	return &CancelNotice{Message: "checkout closed"}
}

// RetryAvailability re-probes the gateway after a load failure.
func (s *service) RetryAvailability(ctx context.Context) error {
	return s.probe(ctx)
}

// ensureAvailable gates session creation on gateway reachability. Once
// the probe fails, checkout stays blocked until RetryAvailability
// succeeds.
func (s *service) ensureAvailable(ctx context.Context) error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case availabilityReady:
		return nil
	case availabilityDown:
		return pkgerrors.New(pkgerrors.CodeDependency, "payment gateway unavailable, retry checkout")
	default:
		return s.probe(ctx)
	}
}

func (s *service) probe(ctx context.Context) error {
	probeCtx := ctx
	if s.cfg.SessionTimeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, s.cfg.SessionTimeout)
		defer cancel()
	}

	err := s.gateway.Probe(probeCtx)

	s.mu.Lock()
	if err != nil {
		s.state = availabilityDown
	} else {
		s.state = availabilityReady
	}
	s.mu.Unlock()

	if err != nil {
		s.logg.Warn(ctx, "payment gateway probe failed: "+err.Error())
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway unavailable, retry checkout")
	}
	return nil
}

// subunitAmount converts the major-unit total into gateway subunits,
// rounding half away from zero.
func subunitAmount(total decimal.Decimal, factor int) int64 {
	if factor <= 0 {
		factor = 100
	}
	return total.Mul(decimal.NewFromInt(int64(factor))).Round(0).IntPart()
}

func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "HF-" + strings.ToUpper(raw[:10])
}
