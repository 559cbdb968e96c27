package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

// Mock implementations

type mockStockOutRepository struct {
	CreateFunc   func(ctx context.Context, order *domain.StockOut) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.StockOut, error)
	FindAllFunc  func(ctx context.Context) ([]domain.StockOut, error)
}

func (m *mockStockOutRepository) Create(ctx context.Context, order *domain.StockOut) error {
	return m.CreateFunc(ctx, order)
}

func (m *mockStockOutRepository) FindByID(ctx context.Context, id uint) (*domain.StockOut, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockStockOutRepository) FindAll(ctx context.Context) ([]domain.StockOut, error) {
	return m.FindAllFunc(ctx)
}

type mockProductFinder struct {
	FindByIDsFunc func(ctx context.Context, ids []int) ([]domain.Product, error)
}

func (m *mockProductFinder) FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error) {
	return m.FindByIDsFunc(ctx, ids)
}

type mockConfirmationService struct {
	ConfirmFunc func(ctx context.Context, orderID uint) (*domain.StockOut, error)
}

func (m *mockConfirmationService) Confirm(ctx context.Context, orderID uint) (*domain.StockOut, error) {
	return m.ConfirmFunc(ctx, orderID)
}

type mockCache struct {
	GetFunc    func(ctx context.Context, orderID uint) (*domain.StockOut, bool)
	SetFunc    func(ctx context.Context, order *domain.StockOut)
	DeleteFunc func(ctx context.Context, orderID uint)
}

func (m *mockCache) Get(ctx context.Context, orderID uint) (*domain.StockOut, bool) {
	if m.GetFunc == nil {
		return nil, false
	}
	return m.GetFunc(ctx, orderID)
}

func (m *mockCache) Set(ctx context.Context, order *domain.StockOut) {
	if m.SetFunc != nil {
		m.SetFunc(ctx, order)
	}
}

func (m *mockCache) Delete(ctx context.Context, orderID uint) {
	if m.DeleteFunc != nil {
		m.DeleteFunc(ctx, orderID)
	}
}

func newTestCreateUseCase(repo *mockStockOutRepository, finder *mockProductFinder) *CreateStockOutUseCase {
	return NewCreateStockOutUseCase(repo, finder, zap.NewNop(), "Technical Team")
}

// Tests

func TestCreate_ComputesAndFreezesTotal(t *testing.T) {
	ctx := context.Background()

	var persisted *domain.StockOut
	repo := &mockStockOutRepository{
		CreateFunc: func(ctx context.Context, order *domain.StockOut) error {
			order.ID = 42
			persisted = order
			return nil
		},
	}
	finder := &mockProductFinder{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 1, Name: "Product A"},
				{ID: 2, Name: "Product B"},
			}, nil
		},
	}

	uc := newTestCreateUseCase(repo, finder)

	order, err := uc.Create(ctx, dto.CreateStockOutRequest{
		CustomerRef: "CUST-001",
		OrderKind:   "customer",
		Items: []dto.CreateStockOutItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 100},
			{ProductID: 2, Quantity: 1, UnitPrice: 50},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.TotalAmount != 250 {
		t.Errorf("expected total 250, got %v", order.TotalAmount)
	}
	if order.Status != domain.StockOutStatusPending {
		t.Errorf("expected status PENDING, got %s", order.Status)
	}
	if order.Kind != domain.StockOutKindCustomer {
		t.Errorf("expected kind CUSTOMER, got %s", order.Kind)
	}
	if persisted == nil {
		t.Fatalf("expected order to be persisted")
	}
	if persisted.Items[0].ProductName != "Product A" {
		t.Errorf("expected product name snapshot, got %q", persisted.Items[0].ProductName)
	}
}

func TestCreate_TechnicalOrderStampsSentinel(t *testing.T) {
	ctx := context.Background()

	repo := &mockStockOutRepository{
		CreateFunc: func(ctx context.Context, order *domain.StockOut) error {
			return nil
		},
	}
	finder := &mockProductFinder{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, Name: "Toner"}}, nil
		},
	}

	uc := newTestCreateUseCase(repo, finder)

	order, err := uc.Create(ctx, dto.CreateStockOutRequest{
		OrderKind: "technical",
		Items: []dto.CreateStockOutItem{
			{ProductID: 1, Quantity: 1, UnitPrice: 10},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.Kind != domain.StockOutKindTechnical {
		t.Errorf("expected kind TECHNICAL, got %s", order.Kind)
	}
	if order.CustomerRef != "Technical Team" {
		t.Errorf("expected sentinel customer ref, got %q", order.CustomerRef)
	}
}

func TestCreate_RejectsInvalidRequests(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateStockOutRequest
	}{
		{
			name: "empty items",
			req: dto.CreateStockOutRequest{
				CustomerRef: "CUST-001",
				OrderKind:   "customer",
				Items:       nil,
			},
		},
		{
			name: "zero quantity",
			req: dto.CreateStockOutRequest{
				CustomerRef: "CUST-001",
				OrderKind:   "customer",
				Items: []dto.CreateStockOutItem{
					{ProductID: 1, Quantity: 0, UnitPrice: 10},
				},
			},
		},
		{
			name: "negative unit price",
			req: dto.CreateStockOutRequest{
				CustomerRef: "CUST-001",
				OrderKind:   "customer",
				Items: []dto.CreateStockOutItem{
					{ProductID: 1, Quantity: 1, UnitPrice: -5},
				},
			},
		},
		{
			name: "non-positive product id",
			req: dto.CreateStockOutRequest{
				CustomerRef: "CUST-001",
				OrderKind:   "customer",
				Items: []dto.CreateStockOutItem{
					{ProductID: 0, Quantity: 1, UnitPrice: 10},
				},
			},
		},
		{
			name: "customer order without customer ref",
			req: dto.CreateStockOutRequest{
				OrderKind: "customer",
				Items: []dto.CreateStockOutItem{
					{ProductID: 1, Quantity: 1, UnitPrice: 10},
				},
			},
		},
		{
			name: "unknown order kind",
			req: dto.CreateStockOutRequest{
				CustomerRef: "CUST-001",
				OrderKind:   "wholesale",
				Items: []dto.CreateStockOutItem{
					{ProductID: 1, Quantity: 1, UnitPrice: 10},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created := false
			repo := &mockStockOutRepository{
				CreateFunc: func(ctx context.Context, order *domain.StockOut) error {
					created = true
					return nil
				},
			}
			finder := &mockProductFinder{
				FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
					return []domain.Product{{ID: 1, Name: "Known"}}, nil
				},
			}

			uc := newTestCreateUseCase(repo, finder)

			_, err := uc.Create(ctx, tc.req)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if _, ok := apperrors.IsValidationError(err); !ok {
				t.Errorf("expected ValidationError, got %T", err)
			}
			if created {
				t.Errorf("expected nothing persisted on validation failure")
			}
		})
	}
}

func TestCreate_UnknownProduct(t *testing.T) {
	ctx := context.Background()

	created := false
	repo := &mockStockOutRepository{
		CreateFunc: func(ctx context.Context, order *domain.StockOut) error {
			created = true
			return nil
		},
	}
	finder := &mockProductFinder{
		FindByIDsFunc: func(ctx context.Context, ids []int) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, Name: "Known"}}, nil
		},
	}

	uc := newTestCreateUseCase(repo, finder)

	_, err := uc.Create(ctx, dto.CreateStockOutRequest{
		CustomerRef: "CUST-001",
		OrderKind:   "customer",
		Items: []dto.CreateStockOutItem{
			{ProductID: 1, Quantity: 1, UnitPrice: 10},
			{ProductID: 99, Quantity: 1, UnitPrice: 10},
		},
	})

	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
	if created {
		t.Errorf("expected nothing persisted on validation failure")
	}
}
