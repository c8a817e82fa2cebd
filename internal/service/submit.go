package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/ledger"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/pricing"
)

// Tier names, also reported in logs and events.
const (
	tierAtomic = "atomic-rpc"
	tierDirect = "direct-insert"
	tierLedger = "local-ledger"
)

// SubmitService is the order submission coordinator: it guarantees a
// checkout ends up somewhere durable, preferring the strongest-consistency
// path available. No error ever escapes Submit; every failure is folded
// into the SubmitResult.
type SubmitService struct {
	store    SubmitStore
	ledger   ledger.Ledger
	producer Publisher
	logger   *zap.Logger
}

func NewSubmitService(store SubmitStore, led ledger.Ledger, producer Publisher, logger *zap.Logger) *SubmitService {
	return &SubmitService{
		store:    store,
		ledger:   led,
		producer: producer,
		logger:   logger,
	}
}

type placement struct {
	orderID      int64
	local        bool
	stockChecked bool
}

func (s *SubmitService) Submit(ctx context.Context, req domain.CheckoutRequest, requestID string) domain.SubmitResult {
	if !req.Status.Valid() {
		req.Status = domain.OrderStatusPending
	}

	s.warnOnTotalMismatch(req, requestID)

	order := orderFromRequest(req)

	strategies := []strategy[placement]{
		{name: tierAtomic, run: func(ctx context.Context) (placement, error) {
			id, err := s.store.PlaceOrderWithStockCheck(ctx, order)
			if err != nil {
				return placement{}, err
			}
			return placement{orderID: id, stockChecked: true}, nil
		}},
		{name: tierDirect, run: func(ctx context.Context) (placement, error) {
			return s.directInsert(ctx, order)
		}},
		{name: tierLedger, run: func(ctx context.Context) (placement, error) {
			id, err := s.ledger.Append(order)
			if err != nil {
				return placement{}, err
			}
			return placement{orderID: id, local: true}, nil
		}},
	}

	// Draft checkouts skip the atomic path: stock validation is meaningless
	// for an abandoned form.
	if req.Status == domain.OrderStatusIncomplete {
		strategies = strategies[1:]
	}

	placed, tier, err := tryInOrder(ctx, s.logger, "order-submit", strategies)
	if err != nil {
		s.logger.Error("Order submission exhausted all tiers",
			zap.String("request_id", requestID),
			zap.Error(err))
		return domain.SubmitResult{Success: false, Error: err.Error()}
	}

	s.logger.Info("Order placed",
		zap.Int64("order_id", placed.orderID),
		zap.String("tier", tier),
		zap.Bool("stock_checked", placed.stockChecked),
		zap.String("request_id", requestID))

	if !placed.local && req.Status != domain.OrderStatusIncomplete {
		s.publishPlaced(order, placed, requestID)
	}

	return domain.SubmitResult{
		Success: true,
		OrderID: placed.orderID,
		IsLocal: placed.local,
	}
}

// directInsert inserts the order row, then the item rows best-effort: an
// item failure is logged but does not roll back the order. Stock is not
// decremented on this path.
func (s *SubmitService) directInsert(ctx context.Context, order domain.Order) (placement, error) {
	id, err := s.store.InsertOrder(ctx, &order)
	if err != nil {
		return placement{}, err
	}
	if err := s.store.InsertOrderItems(ctx, id, order.Items); err != nil {
		s.logger.Warn("Order items insert failed, order kept without items",
			zap.Int64("order_id", id),
			zap.Error(err))
	}
	return placement{orderID: id}, nil
}

// warnOnTotalMismatch recomputes the total server-side and flags drift.
// The submitted total is persisted either way.
func (s *SubmitService) warnOnTotalMismatch(req domain.CheckoutRequest, requestID string) {
	expected := pricing.ExpectedTotal(req.Items, req.DeliveryCharge, req.Discount)
	if math.Abs(expected-req.TotalAmount) > 0.01 {
		s.logger.Warn("Submitted total does not match recomputed total",
			zap.Float64("submitted", req.TotalAmount),
			zap.Float64("expected", expected),
			zap.String("request_id", requestID))
	}
}

func (s *SubmitService) publishPlaced(order domain.Order, placed placement, requestID string) {
	if s.producer == nil {
		return
	}
	err := s.producer.PublishOrderPlaced(events.OrderPlacedEvent{
		EventID:      uuid.New().String(),
		OrderID:      placed.orderID,
		Phone:        order.Phone,
		TotalAmount:  order.TotalAmount,
		Items:        order.Items,
		Status:       string(order.Status),
		StockChecked: placed.stockChecked,
		Timestamp:    time.Now().UTC(),
		RequestID:    requestID,
	})
	if err != nil {
		// Best-effort, eventual consistency.
		s.logger.Error("Failed to publish order-placed event",
			zap.Int64("order_id", placed.orderID),
			zap.Error(err))
	}
}

func orderFromRequest(req domain.CheckoutRequest) domain.Order {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return domain.Order{
		CustomerName:  req.CustomerName,
		CustomerID:    req.CustomerID,
		Phone:         req.Phone,
		Address:       req.Address,
		Note:          req.Note,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		PaymentNumber: req.PaymentNumber,
		Status:        req.Status,
		Items:         items,
	}
}
