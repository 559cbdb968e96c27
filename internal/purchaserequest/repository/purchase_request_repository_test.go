package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
	"stockroom/internal/testutil"
)

// Integration Tests

func TestPurchaseRequestRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPurchaseRequestRepository(db)

	request := &domain.PurchaseRequest{
		SupplierName:  "Acme Supplies",
		ProductItem:   "Copper Wire",
		Quantity:      40,
		NeedDate:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		UnitPrice:     12.5,
		TotalCost:     500,
		RequestStatus: domain.PurchaseRequestStatusPending,
	}

	err := repo.Create(context.Background(), request)
	require.NoError(t, err)
	assert.NotZero(t, request.ID)

	found, err := repo.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Supplies", found.SupplierName)
	assert.Equal(t, 500.0, found.TotalCost)
	assert.Equal(t, domain.PurchaseRequestStatusPending, found.RequestStatus)
}

func TestPurchaseRequestRepository_UpdateStatus_FreezesTotalCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPurchaseRequestRepository(db)

	request := &domain.PurchaseRequest{
		SupplierName:  "Acme Supplies",
		ProductItem:   "Copper Wire",
		Quantity:      40,
		NeedDate:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		UnitPrice:     12.5,
		TotalCost:     500,
		RequestStatus: domain.PurchaseRequestStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), request))

	err := repo.UpdateStatus(context.Background(), request.ID, domain.PurchaseRequestStatusApproved)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseRequestStatusApproved, found.RequestStatus)
	assert.Equal(t, 500.0, found.TotalCost)
}

func TestPurchaseRequestRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLPurchaseRequestRepository(db)

	err := repo.UpdateStatus(context.Background(), 999999, domain.PurchaseRequestStatusApproved)
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
