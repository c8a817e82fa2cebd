package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

type CatalogService struct {
	store  CatalogStore
	logger *zap.Logger
}

func NewCatalogService(store CatalogStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.store.ListProducts(ctx, category)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p *domain.Product) error {
	if p.Status == "" {
		p.Status = "active"
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.logger.Info("Product created",
		zap.Int64("product_id", p.ID),
		zap.String("name", p.Name))
	return nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, updates map[string]any) error {
	return s.store.UpdateProduct(ctx, id, updates)
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}
