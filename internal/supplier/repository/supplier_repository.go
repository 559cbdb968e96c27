package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/errors"
)

type MySQLSupplierRepository struct {
	db *sql.DB
}

func NewMySQLSupplierRepository(db *sql.DB) *MySQLSupplierRepository {
	return &MySQLSupplierRepository{db: db}
}

func (r *MySQLSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		INSERT INTO Supplier (name, contactNumber, email, address)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		supplier.Name, supplier.ContactNumber, supplier.Email, supplier.Address)
	if err != nil {
		return fmt.Errorf("inserting supplier: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	supplier.ID = int(lastInsertID)
	return nil
}

func (r *MySQLSupplierRepository) FindByID(ctx context.Context, id int) (*domain.Supplier, error) {
	query := `
		SELECT id, name, contactNumber, email, address, createdAt, updatedAt
		FROM Supplier
		WHERE id = ?
	`

	var s domain.Supplier
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactNumber, &s.Email, &s.Address,
		&s.CreatedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by id: %w", err)
	}

	return &s, nil
}

func (r *MySQLSupplierRepository) FindAll(ctx context.Context) ([]domain.Supplier, error) {
	query := `
		SELECT id, name, contactNumber, email, address, createdAt, updatedAt
		FROM Supplier
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		err := rows.Scan(&s.ID, &s.Name, &s.ContactNumber, &s.Email, &s.Address,
			&s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier row: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplier rows: %w", err)
	}

	return suppliers, nil
}

func (r *MySQLSupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		UPDATE Supplier
		SET name = ?, contactNumber = ?, email = ?, address = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		supplier.Name, supplier.ContactNumber, supplier.Email, supplier.Address,
		supplier.ID)
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, supplier.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *MySQLSupplierRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Supplier WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("supplier with id %d not found", id))
	}

	return nil
}
