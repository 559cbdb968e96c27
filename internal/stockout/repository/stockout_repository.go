package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type MySQLStockOutRepository struct {
	db *sql.DB
}

func NewMySQLStockOutRepository(db *sql.DB) *MySQLStockOutRepository {
	return &MySQLStockOutRepository{db: db}
}

// Create persists the order header and all line items in one transaction, so
// a failed insert leaves nothing behind. The generated id and the
// store-assigned timestamps are written back into the aggregate.
func (r *MySQLStockOutRepository) Create(ctx context.Context, order *domain.StockOut) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO StockOut (customerRef, orderKind, status, totalAmount)
		VALUES (?, ?, ?, ?)
	`, order.CustomerRef, order.Kind, order.Status, order.TotalAmount)
	if err != nil {
		return fmt.Errorf("inserting stock-out order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	order.ID = uint(lastInsertID)

	for i := range order.Items {
		item := &order.Items[i]
		item.StockOutID = order.ID

		itemResult, err := tx.ExecContext(ctx, `
			INSERT INTO StockOutItems (stockOutId, productId, productName, quantity, unitPrice)
			VALUES (?, ?, ?, ?, ?)
		`, item.StockOutID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("inserting stock-out item: %w", err)
		}

		itemID, err := itemResult.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		item.ID = uint(itemID)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT createdAt, updatedAt FROM StockOut WHERE id = ?`, order.ID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("reading stock-out timestamps: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stock-out creation: %w", err)
	}

	return nil
}

func (r *MySQLStockOutRepository) FindByID(ctx context.Context, id uint) (*domain.StockOut, error) {
	query := `
		SELECT id, customerRef, orderKind, status, totalAmount, createdAt, updatedAt
		FROM StockOut
		WHERE id = ?
	`

	var order domain.StockOut
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerRef, &order.Kind, &order.Status,
		&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("stock-out order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock-out order by id: %w", err)
	}

	items, err := r.findItems(ctx, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return &order, nil
}

// FindByIDForUpdate locks the order header row so two confirmations of the
// same order serialize on it.
func (r *MySQLStockOutRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.StockOut, error) {
	query := `
		SELECT id, customerRef, orderKind, status, totalAmount, createdAt, updatedAt
		FROM StockOut
		WHERE id = ?
		FOR UPDATE
	`

	var order domain.StockOut
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerRef, &order.Kind, &order.Status,
		&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("stock-out order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying stock-out order for update: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, stockOutId, productId, productName, quantity, unitPrice
		FROM StockOutItems
		WHERE stockOutId = ?
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying stock-out items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.StockOutItem
		err := rows.Scan(&item.ID, &item.StockOutID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("scanning stock-out item row: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock-out item rows: %w", err)
	}

	return &order, nil
}

func (r *MySQLStockOutRepository) FindAll(ctx context.Context) ([]domain.StockOut, error) {
	query := `
		SELECT id, customerRef, orderKind, status, totalAmount, createdAt, updatedAt
		FROM StockOut
		ORDER BY createdAt DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying stock-out orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.StockOut
	var ids []uint
	for rows.Next() {
		var order domain.StockOut
		err := rows.Scan(
			&order.ID, &order.CustomerRef, &order.Kind, &order.Status,
			&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stock-out row: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock-out rows: %w", err)
	}

	items, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// MarkConfirmed flips the status inside the caller's transaction and returns
// the store-assigned update timestamp. The status guard in the WHERE clause
// makes the PENDING to CONFIRMED transition happen at most once even if two
// transactions race past the earlier checks.
func (r *MySQLStockOutRepository) MarkConfirmed(ctx context.Context, tx *sql.Tx, id uint) (time.Time, error) {
	query := `UPDATE StockOut SET status = ? WHERE id = ? AND status = ?`

	result, err := tx.ExecContext(ctx, query,
		domain.StockOutStatusConfirmed, id, domain.StockOutStatusPending)
	if err != nil {
		return time.Time{}, fmt.Errorf("confirming stock-out order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return time.Time{}, errors.NewAlreadyConfirmedError(fmt.Sprintf("stock-out order %d is already confirmed", id))
	}

	var updatedAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT updatedAt FROM StockOut WHERE id = ?`, id,
	).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading stock-out update timestamp: %w", err)
	}

	return updatedAt, nil
}

func (r *MySQLStockOutRepository) findItems(ctx context.Context, orderIDs []uint) (map[uint][]domain.StockOutItem, error) {
	items := make(map[uint][]domain.StockOutItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, 0, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, stockOutId, productId, productName, quantity, unitPrice
		FROM StockOutItems
		WHERE stockOutId IN (%s)
		ORDER BY id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stock-out items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.StockOutItem
		err := rows.Scan(&item.ID, &item.StockOutID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("scanning stock-out item row: %w", err)
		}
		items[item.StockOutID] = append(items[item.StockOutID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock-out item rows: %w", err)
	}

	return items, nil
}
