package product

import (
	"context"

	"stockroom/internal/domain"
	"stockroom/internal/product/repository"
)

type productService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Status == "" {
		product.Status = domain.ProductStatusAvailable
	}
	return s.repo.Create(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, filter repository.ListFilter) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return s.repo.Update(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
