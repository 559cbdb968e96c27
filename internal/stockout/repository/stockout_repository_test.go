package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
	"stockroom/internal/testutil"
)

// Unit Tests

func TestNewMySQLStockOutRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLStockOutRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestStockOutRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLStockOutRepository(db)

	order := &domain.StockOut{
		CustomerRef: "CUST-001",
		Kind:        domain.StockOutKindCustomer,
		Status:      domain.StockOutStatusPending,
		TotalAmount: 250,
		Items: []domain.StockOutItem{
			{ProductID: 1, ProductName: "Product A", Quantity: 2, UnitPrice: 100},
			{ProductID: 2, ProductName: "Product B", Quantity: 1, UnitPrice: 50},
		},
	}

	err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "CUST-001", found.CustomerRef)
	assert.Equal(t, domain.StockOutStatusPending, found.Status)
	assert.Equal(t, 250.0, found.TotalAmount)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "Product A", found.Items[0].ProductName)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, 100.0, found.Items[0].UnitPrice)
}

func TestStockOutRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLStockOutRepository(db)

	order, err := repo.FindByID(context.Background(), 999999)
	assert.Error(t, err)
	assert.Nil(t, order)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestStockOutRepository_FindAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLStockOutRepository(db)

	for _, ref := range []string{"CUST-001", "CUST-002", "CUST-003"} {
		order := &domain.StockOut{
			CustomerRef: ref,
			Kind:        domain.StockOutKindCustomer,
			Status:      domain.StockOutStatusPending,
			TotalAmount: 10,
			Items: []domain.StockOutItem{
				{ProductID: 1, ProductName: "Product A", Quantity: 1, UnitPrice: 10},
			},
		}
		require.NoError(t, repo.Create(context.Background(), order))
	}

	orders, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// createdAt resolution is one second, so the id tiebreaker keeps the
	// ordering deterministic.
	assert.Equal(t, "CUST-003", orders[0].CustomerRef)
	assert.Equal(t, "CUST-002", orders[1].CustomerRef)
	assert.Equal(t, "CUST-001", orders[2].CustomerRef)
	require.Len(t, orders[0].Items, 1)
}

func TestStockOutRepository_MarkConfirmed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLStockOutRepository(db)

	order := &domain.StockOut{
		CustomerRef: "CUST-001",
		Kind:        domain.StockOutKindCustomer,
		Status:      domain.StockOutStatusPending,
		TotalAmount: 10,
		Items: []domain.StockOutItem{
			{ProductID: 1, ProductName: "Product A", Quantity: 1, UnitPrice: 10},
		},
	}
	require.NoError(t, repo.Create(context.Background(), order))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	confirmedAt, err := repo.MarkConfirmed(context.Background(), tx, order.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StockOutStatusConfirmed, found.Status)
	// The returned timestamp is the one the flip wrote, not the pre-update one.
	assert.True(t, confirmedAt.Equal(found.UpdatedAt),
		"MarkConfirmed timestamp %v must match the stored updatedAt %v", confirmedAt, found.UpdatedAt)

	// A second flip must be refused by the status guard.
	tx, err = db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = repo.MarkConfirmed(context.Background(), tx, order.ID)
	tx.Rollback()

	require.Error(t, err)
	_, ok := errors.IsAlreadyConfirmedError(err)
	assert.True(t, ok)
}
