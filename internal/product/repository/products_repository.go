package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

const mysqlErrDuplicateEntry = 1062

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// ListFilter narrows and orders FindAll results. Zero values mean "no filter".
type ListFilter struct {
	Category  string
	Status    string
	LowStock  bool
	SortBy    string
	SortOrder string
}

// sortColumns whitelists the sortable columns so request input never reaches
// the ORDER BY clause directly.
var sortColumns = map[string]string{
	"name":            "name",
	"category":        "category",
	"quantityInStock": "quantityInStock",
	"sellingPrice":    "sellingPrice",
	"createdAt":       "createdAt",
}

const productColumns = `id, serialNumber, name, category, description,
	       quantityInStock, reOrderLevel, supplierId, purchasePrice,
	       sellingPrice, status, remark, createdAt, updatedAt`

func (r *MySQLRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO Product (serialNumber, name, category, description,
		                     quantityInStock, reOrderLevel, supplierId,
		                     purchasePrice, sellingPrice, status, remark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		product.SerialNumber, product.Name, product.Category, product.Description,
		product.QuantityInStock, product.ReOrderLevel, product.SupplierID,
		product.PurchasePrice, product.SellingPrice, product.Status, product.Remark,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewValidationError("serial number already exists", apperrors.ValidationDetail{
				Field:   "serialNumber",
				Message: "serialNumber must be unique",
			})
		}
		return fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	product.ID = int(lastInsertID)
	return nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Product WHERE id = ?`, productColumns)

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.SerialNumber, &p.Name, &p.Category, &p.Description,
		&p.QuantityInStock, &p.ReOrderLevel, &p.SupplierID, &p.PurchasePrice,
		&p.SellingPrice, &p.Status, &p.Remark, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`SELECT %s FROM Product WHERE id IN (%s)`,
		productColumns, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *MySQLRepository) FindAll(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, "category LIKE ?")
		args = append(args, "%"+filter.Category+"%")
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.LowStock {
		conditions = append(conditions, "quantityInStock <= reOrderLevel")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		sortBy = "createdAt"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM Product%s ORDER BY %s %s`,
		productColumns, where, sortBy, order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *MySQLRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE Product
		SET serialNumber = ?, name = ?, category = ?, description = ?,
		    quantityInStock = ?, reOrderLevel = ?, supplierId = ?,
		    purchasePrice = ?, sellingPrice = ?, status = ?, remark = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		product.SerialNumber, product.Name, product.Category, product.Description,
		product.QuantityInStock, product.ReOrderLevel, product.SupplierID,
		product.PurchasePrice, product.SellingPrice, product.Status, product.Remark,
		product.ID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.NewValidationError("serial number already exists", apperrors.ValidationDetail{
				Field:   "serialNumber",
				Message: "serialNumber must be unique",
			})
		}
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Either the row is absent or nothing changed; distinguish the two.
		if _, err := r.FindByID(ctx, product.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Product WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}

// FindByIDForUpdate locks the product row for the duration of the enclosing
// transaction. Confirmation takes these locks in ascending id order.
func (r *MySQLRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Product WHERE id = ? FOR UPDATE`, productColumns)

	var p domain.Product
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.SerialNumber, &p.Name, &p.Category, &p.Description,
		&p.QuantityInStock, &p.ReOrderLevel, &p.SupplierID, &p.PurchasePrice,
		&p.SellingPrice, &p.Status, &p.Remark, &p.CreatedAt, &p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product for update: %w", err)
	}

	return &p, nil
}

// DecrementStock applies a conditional decrement. It returns false when the
// row was not updated because the remaining stock would go negative, so the
// invariant holds at the storage layer even without the row lock.
func (r *MySQLRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id int, quantity int) (bool, error) {
	query := `
		UPDATE Product
		SET quantityInStock = quantityInStock - ?
		WHERE id = ? AND quantityInStock >= ?
	`

	result, err := tx.ExecContext(ctx, query, quantity, id, quantity)
	if err != nil {
		return false, fmt.Errorf("decrementing product stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.SerialNumber, &p.Name, &p.Category, &p.Description,
			&p.QuantityInStock, &p.ReOrderLevel, &p.SupplierID, &p.PurchasePrice,
			&p.SellingPrice, &p.Status, &p.Remark, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}
