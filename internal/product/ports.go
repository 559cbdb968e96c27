package product

import (
	"context"

	"stockroom/internal/domain"
	"stockroom/internal/product/repository"
)

type Service interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListProducts(ctx context.Context, filter repository.ListFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type Repository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindAll(ctx context.Context, filter repository.ListFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int) error
}
