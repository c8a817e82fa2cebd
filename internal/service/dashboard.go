package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// DashboardService computes the admin landing-page aggregates. Plain
// reductions, one query each; figures are best-effort when fallback writes
// have bypassed the stock-checked path.
type DashboardService struct {
	store             DashboardStore
	lowStockThreshold int
	logger            *zap.Logger
}

func NewDashboardService(store DashboardStore, lowStockThreshold int, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:             store,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	total, pending, err := s.store.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.SumOrderTotals(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.store.ListLowStockProducts(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	if lowStock == nil {
		lowStock = []domain.Product{}
	}

	return &domain.DashboardStats{
		TotalOrders:   total,
		PendingOrders: pending,
		TotalRevenue:  revenue,
		LowStock:      lowStock,
	}, nil
}
