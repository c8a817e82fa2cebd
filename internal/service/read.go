package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/ledger"
)

const (
	tierJoined = "joined-query"
	tierFlat   = "flat-query"
)

// ReadService reconstructs the admin's order and customer views, cascading
// through remote tiers down to the local ledger.
type ReadService struct {
	store  ReadStore
	ledger ledger.Ledger
	logger *zap.Logger
}

func NewReadService(store ReadStore, led ledger.Ledger, logger *zap.Logger) *ReadService {
	return &ReadService{
		store:  store,
		ledger: led,
		logger: logger,
	}
}

// ListOrders returns one page of orders with nested items. Tier order:
// joined query, flat query (items defaulted empty), local ledger. Only if
// all three fail does an error reach the caller.
func (s *ReadService) ListOrders(ctx context.Context, page, pageSize int) (*domain.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	strategies := []strategy[*domain.OrderPage]{
		{name: tierJoined, run: func(ctx context.Context) (*domain.OrderPage, error) {
			orders, total, err := s.store.ListOrdersJoined(ctx, page, pageSize)
			if err != nil {
				return nil, err
			}
			for i := range orders {
				if orders[i].Items == nil {
					orders[i].Items = []domain.OrderItem{}
				}
			}
			return buildPage(orders, total, page, pageSize), nil
		}},
		{name: tierFlat, run: func(ctx context.Context) (*domain.OrderPage, error) {
			orders, total, err := s.store.ListOrdersFlat(ctx, page, pageSize)
			if err != nil {
				return nil, err
			}
			// No join available: items are empty, not unknown.
			for i := range orders {
				orders[i].Items = []domain.OrderItem{}
			}
			return buildPage(orders, total, page, pageSize), nil
		}},
		{name: tierLedger, run: func(ctx context.Context) (*domain.OrderPage, error) {
			return s.pageFromLedger(page, pageSize), nil
		}},
	}

	pageOut, _, err := tryInOrder(ctx, s.logger, "order-list", strategies)
	return pageOut, err
}

// pageFromLedger reconstructs the page shape from locally persisted
// records, normalizing historical field variants at this boundary.
func (s *ReadService) pageFromLedger(page, pageSize int) *domain.OrderPage {
	records := s.ledger.List()

	orders := make([]domain.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, domain.NormalizeOrderRecord(rec))
	}
	// Ledger appends oldest-first; the admin view wants newest-first like
	// the remote tiers.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	total := int64(len(orders))
	start := (page - 1) * pageSize
	if start > len(orders) {
		start = len(orders)
	}
	end := start + pageSize
	if end > len(orders) {
		end = len(orders)
	}
	pageOrders := orders[start:end]
	for i := range pageOrders {
		if pageOrders[i].Items == nil {
			pageOrders[i].Items = []domain.OrderItem{}
		}
	}

	return buildPage(pageOrders, total, page, pageSize)
}

func buildPage(orders []domain.Order, total int64, page, pageSize int) *domain.OrderPage {
	if orders == nil {
		orders = []domain.Order{}
	}
	return &domain.OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// ListCustomers merges the profiles table with per-customer order stats.
// When the profiles read fails, pseudo-customers are derived from orders
// alone, grouped by phone.
func (s *ReadService) ListCustomers(ctx context.Context) ([]domain.CustomerSummary, error) {
	projections, err := s.store.ListOrderProjections(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.store.ListProfiles(ctx)
	if err != nil {
		s.logger.Warn("Profiles read failed, deriving guest customers from orders",
			zap.Error(err))
		return guestCustomers(projections), nil
	}

	type stats struct {
		orders int
		spent  float64
		last   time.Time
	}
	byCustomer := make(map[string]*stats)
	for _, p := range projections {
		if p.CustomerID == "" {
			continue
		}
		st, ok := byCustomer[p.CustomerID]
		if !ok {
			st = &stats{}
			byCustomer[p.CustomerID] = st
		}
		st.orders++
		st.spent += p.TotalAmount
		if p.CreatedAt.After(st.last) {
			st.last = p.CreatedAt
		}
	}

	summaries := make([]domain.CustomerSummary, 0, len(profiles))
	for _, prof := range profiles {
		summary := domain.CustomerSummary{
			ID:       prof.ID,
			Name:     prof.Name,
			Email:    prof.Email,
			Phone:    prof.Phone,
			JoinDate: prof.CreatedAt,
		}
		if st, ok := byCustomer[prof.ID]; ok {
			summary.TotalOrders = st.orders
			summary.TotalSpent = st.spent
			summary.LastOrder = st.last
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// guestCustomers groups orders by phone (name when phone is absent) and
// synthesizes guest- ids. Last-order ties keep the first-seen row.
func guestCustomers(projections []domain.OrderProjection) []domain.CustomerSummary {
	byKey := make(map[string]*domain.CustomerSummary)
	var keys []string

	for _, p := range projections {
		key := p.Phone
		if key == "" {
			key = p.CustomerName
		}
		if key == "" {
			continue
		}
		summary, ok := byKey[key]
		if !ok {
			summary = &domain.CustomerSummary{
				ID:       "guest-" + key,
				Name:     p.CustomerName,
				Phone:    p.Phone,
				JoinDate: p.CreatedAt,
			}
			byKey[key] = summary
			keys = append(keys, key)
		}
		summary.TotalOrders++
		summary.TotalSpent += p.TotalAmount
		if p.CreatedAt.After(summary.LastOrder) {
			summary.LastOrder = p.CreatedAt
		}
		if !p.CreatedAt.IsZero() && p.CreatedAt.Before(summary.JoinDate) {
			summary.JoinDate = p.CreatedAt
		}
	}

	out := make([]domain.CustomerSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}
