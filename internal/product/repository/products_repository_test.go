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

func TestNewMySQLRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func newProduct(serial, name string, quantity, reOrderLevel int) *domain.Product {
	return &domain.Product{
		SerialNumber:    serial,
		Name:            name,
		Category:        "Electrical",
		QuantityInStock: quantity,
		ReOrderLevel:    reOrderLevel,
		PurchasePrice:   80,
		SellingPrice:    100,
		Status:          domain.ProductStatusAvailable,
	}
}

func TestProductRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	product := newProduct("SN-001", "Product A", 10, 3)
	err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "SN-001", found.SerialNumber)
	assert.Equal(t, "Product A", found.Name)
	assert.Equal(t, 10, found.QuantityInStock)
	assert.Equal(t, 3, found.ReOrderLevel)
}

func TestProductRepository_Create_DuplicateSerialNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	require.NoError(t, repo.Create(context.Background(), newProduct("SN-001", "Product A", 10, 3)))

	err := repo.Create(context.Background(), newProduct("SN-001", "Product B", 5, 2))
	require.Error(t, err)

	ve, ok := errors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "serialNumber", ve.Details[0].Field)
}

func TestProductRepository_FindByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	a := newProduct("SN-001", "Product A", 10, 3)
	b := newProduct("SN-002", "Product B", 5, 2)
	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, repo.Create(context.Background(), b))

	products, err := repo.FindByIDs(context.Background(), []int{a.ID, b.ID, 999999})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_FindAll_LowStockFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	require.NoError(t, repo.Create(context.Background(), newProduct("SN-001", "Plenty", 10, 3)))
	require.NoError(t, repo.Create(context.Background(), newProduct("SN-002", "At Level", 3, 3)))
	require.NoError(t, repo.Create(context.Background(), newProduct("SN-003", "Below", 1, 3)))

	products, err := repo.FindAll(context.Background(), ListFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, products, 2)

	names := []string{products[0].Name, products[1].Name}
	assert.Contains(t, names, "At Level")
	assert.Contains(t, names, "Below")
}

func TestProductRepository_FindAll_SortWhitelist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	require.NoError(t, repo.Create(context.Background(), newProduct("SN-001", "Bravo", 10, 3)))
	require.NoError(t, repo.Create(context.Background(), newProduct("SN-002", "Alpha", 5, 2)))

	products, err := repo.FindAll(context.Background(), ListFilter{SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Alpha", products[0].Name)
	assert.Equal(t, "Bravo", products[1].Name)

	// Unknown sort columns must fall back to the default rather than reach
	// the query.
	products, err = repo.FindAll(context.Background(), ListFilter{SortBy: "name; DROP TABLE Product"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	product := newProduct("SN-001", "Product A", 10, 3)
	require.NoError(t, repo.Create(context.Background(), product))

	product.Name = "Product A v2"
	product.QuantityInStock = 20
	require.NoError(t, repo.Update(context.Background(), product))

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product A v2", found.Name)
	assert.Equal(t, 20, found.QuantityInStock)
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	product := newProduct("SN-404", "Ghost", 1, 1)
	product.ID = 999999

	err := repo.Update(context.Background(), product)
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	product := newProduct("SN-001", "Product A", 10, 3)
	require.NoError(t, repo.Create(context.Background(), product))

	require.NoError(t, repo.Delete(context.Background(), product.ID))

	_, err := repo.FindByID(context.Background(), product.ID)
	require.Error(t, err)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(context.Background(), product.ID)
	require.Error(t, err)
	_, ok = errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLRepository(db)

	product := newProduct("SN-001", "Product A", 5, 1)
	require.NoError(t, repo.Create(context.Background(), product))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	ok, err := repo.DecrementStock(context.Background(), tx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only 2 units remain, so a further decrement of 3 must be refused.
	ok, err = repo.DecrementStock(context.Background(), tx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, tx.Commit())

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.QuantityInStock)
}
