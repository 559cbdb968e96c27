package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type MySQLPurchaseRequestRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseRequestRepository(db *sql.DB) *MySQLPurchaseRequestRepository {
	return &MySQLPurchaseRequestRepository{db: db}
}

func (r *MySQLPurchaseRequestRepository) Create(ctx context.Context, request *domain.PurchaseRequest) error {
	query := `
		INSERT INTO PurchaseRequest (supplierName, productItem, quantity, needDate,
		                             unitPrice, totalCost, remark, requestStatus)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		request.SupplierName, request.ProductItem, request.Quantity, request.NeedDate,
		request.UnitPrice, request.TotalCost, request.Remark, request.RequestStatus)
	if err != nil {
		return fmt.Errorf("inserting purchase request: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	request.ID = int(lastInsertID)
	return nil
}

func (r *MySQLPurchaseRequestRepository) FindByID(ctx context.Context, id int) (*domain.PurchaseRequest, error) {
	query := `
		SELECT id, supplierName, productItem, quantity, needDate, unitPrice,
		       totalCost, remark, requestStatus, createdAt, updatedAt
		FROM PurchaseRequest
		WHERE id = ?
	`

	var pr domain.PurchaseRequest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pr.ID, &pr.SupplierName, &pr.ProductItem, &pr.Quantity, &pr.NeedDate,
		&pr.UnitPrice, &pr.TotalCost, &pr.Remark, &pr.RequestStatus,
		&pr.CreatedAt, &pr.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("purchase request with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying purchase request by id: %w", err)
	}

	return &pr, nil
}

func (r *MySQLPurchaseRequestRepository) FindAll(ctx context.Context) ([]domain.PurchaseRequest, error) {
	query := `
		SELECT id, supplierName, productItem, quantity, needDate, unitPrice,
		       totalCost, remark, requestStatus, createdAt, updatedAt
		FROM PurchaseRequest
		ORDER BY createdAt DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying purchase requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.PurchaseRequest
	for rows.Next() {
		var pr domain.PurchaseRequest
		err := rows.Scan(
			&pr.ID, &pr.SupplierName, &pr.ProductItem, &pr.Quantity, &pr.NeedDate,
			&pr.UnitPrice, &pr.TotalCost, &pr.Remark, &pr.RequestStatus,
			&pr.CreatedAt, &pr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase request row: %w", err)
		}
		requests = append(requests, pr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase request rows: %w", err)
	}

	return requests, nil
}

// UpdateStatus changes only the workflow status. TotalCost is frozen at
// creation and deliberately not touchable here.
func (r *MySQLPurchaseRequestRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE PurchaseRequest SET requestStatus = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating purchase request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}
