package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Integration tests are skipped
// when MySQL is not reachable, so unit runs stay green without it.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/stockroom_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"StockOutItems", "StockOut", "PurchaseRequest", "Product", "Supplier"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func SetupTestTables(t *testing.T, db *sql.DB) {
	createSupplierTable := `
	CREATE TABLE IF NOT EXISTS Supplier (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		contactNumber VARCHAR(30),
		email VARCHAR(150),
		address VARCHAR(255),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		serialNumber VARCHAR(100) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL,
		description TEXT,
		quantityInStock INT NOT NULL DEFAULT 0,
		reOrderLevel INT NOT NULL DEFAULT 0,
		supplierId INT,
		purchasePrice DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		sellingPrice DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		status VARCHAR(50) NOT NULL DEFAULT 'Available',
		remark TEXT,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_category (category),
		INDEX idx_status (status)
	)`

	createPurchaseRequestTable := `
	CREATE TABLE IF NOT EXISTS PurchaseRequest (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		supplierName VARCHAR(150) NOT NULL,
		productItem VARCHAR(255) NOT NULL,
		quantity INT NOT NULL,
		needDate DATETIME NOT NULL,
		unitPrice DECIMAL(10,2) NOT NULL,
		totalCost DECIMAL(12,2) NOT NULL,
		remark TEXT,
		requestStatus VARCHAR(30) NOT NULL DEFAULT 'PENDING',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createStockOutTable := `
	CREATE TABLE IF NOT EXISTS StockOut (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customerRef VARCHAR(150) NOT NULL,
		orderKind VARCHAR(20) NOT NULL DEFAULT 'CUSTOMER',
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		totalAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_status (status),
		INDEX idx_created (createdAt)
	)`

	createStockOutItemsTable := `
	CREATE TABLE IF NOT EXISTS StockOutItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		stockOutId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		productName VARCHAR(255) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		unitPrice DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (stockOutId) REFERENCES StockOut(id) ON DELETE CASCADE,
		INDEX idx_stockout (stockOutId),
		INDEX idx_product (productId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Supplier", createSupplierTable},
		{"Product", createProductTable},
		{"PurchaseRequest", createPurchaseRequestTable},
		{"StockOut", createStockOutTable},
		{"StockOutItems", createStockOutItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// SeedProduct inserts a product row and returns its id.
func SeedProduct(t *testing.T, db *sql.DB, serial, name string, quantity, reOrderLevel int) int {
	result, err := db.Exec(`
		INSERT INTO Product (serialNumber, name, category, description, quantityInStock,
		                     reOrderLevel, sellingPrice, remark)
		VALUES (?, ?, 'General', '', ?, ?, 10.00, '')
	`, serial, name, quantity, reOrderLevel)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get seeded product id: %v", err)
	}

	return int(id)
}
