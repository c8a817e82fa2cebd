package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// PlaceOrderWithStockCheck runs the atomic stock-check procedure: validate
// and decrement stock, insert order and items, all or nothing. Returns the
// new order id.
func (s *Store) PlaceOrderWithStockCheck(ctx context.Context, order domain.Order) (int64, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal items: %w", err)
	}

	var id int64
	err = s.db.WithContext(ctx).Raw(
		"SELECT place_order_with_stock_check(?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb)",
		order.CustomerName, order.Phone, order.Address, order.Note,
		order.TotalAmount, order.PaymentMethod, order.PaymentNumber,
		string(order.Status), string(items),
	).Scan(&id).Error
	if err != nil {
		if isStockError(err) {
			return 0, ErrInsufficientStock
		}
		return 0, fmt.Errorf("place order rpc: %w", err)
	}
	return id, nil
}

// InsertOrder is the plain insert path. No stock validation, no items.
func (s *Store) InsertOrder(ctx context.Context, order *domain.Order) (int64, error) {
	row := *order
	row.Items = nil
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return row.ID, nil
}

// InsertOrderItems inserts item rows for an already-inserted order.
func (s *Store) InsertOrderItems(ctx context.Context, orderID int64, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]domain.OrderItem, len(items))
	for i, it := range items {
		it.ID = 0
		it.OrderID = orderID
		rows[i] = it
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// ListOrdersJoined is the joined read: orders with their items, newest
// first, plus a separate count for pagination.
func (s *Store) ListOrdersJoined(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders joined: %w", err)
	}
	return orders, total, nil
}

// ListOrdersFlat reads orders without items. Survives join-schema mismatch.
func (s *Store) ListOrdersFlat(ctx context.Context, page, pageSize int) ([]domain.Order, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders flat: %w", err)
	}
	return orders, total, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// SetDispatchInfo records the courier result alongside the shipped status.
func (s *Store) SetDispatchInfo(ctx context.Context, id int64, consignmentID, trackingCode string) error {
	res := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         domain.OrderStatusShipped,
			"consignment_id": consignmentID,
			"tracking_code":  trackingCode,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ListOrderProjections is the lightweight read used for customer
// aggregation: id, total, timestamp, phone, name only.
func (s *Store) ListOrderProjections(ctx context.Context) ([]domain.OrderProjection, error) {
	var rows []domain.OrderProjection
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("id", "customer_id", "customer_name", "phone", "total_amount", "created_at").
		Where("status <> ?", domain.OrderStatusIncomplete).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list order projections: %w", err)
	}
	return rows, nil
}

func (s *Store) CountOrders(ctx context.Context) (total, pending int64, err error) {
	if err = s.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ?", domain.OrderStatusPending).
		Count(&pending).Error
	return total, pending, err
}

func (s *Store) SumOrderTotals(ctx context.Context) (float64, error) {
	var revenue float64
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status <> ?", domain.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&revenue)
	return revenue, err
}
