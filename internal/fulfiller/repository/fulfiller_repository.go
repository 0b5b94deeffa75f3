package repository

import (
	"context"
	"database/sql"
	"fmt"

	"playvault/internal/domain"
	"playvault/internal/errors"
)

type MySQLFulfillerRepository struct {
	db *sql.DB
}

func NewMySQLFulfillerRepository(db *sql.DB) *MySQLFulfillerRepository {
	return &MySQLFulfillerRepository{db: db}
}

const fulfillerColumns = `id, name, phone, active, sortOrder, createdAt, updatedAt`

func (r *MySQLFulfillerRepository) FindByID(ctx context.Context, id uint) (*domain.Fulfiller, error) {
	query := `SELECT ` + fulfillerColumns + ` FROM Fulfillers WHERE id = ?`

	var f domain.Fulfiller
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Phone, &f.Active, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("fulfiller %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying fulfiller by id: %w", err)
	}

	return &f, nil
}

func (r *MySQLFulfillerRepository) list(ctx context.Context, query string, args ...any) ([]domain.Fulfiller, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing fulfillers: %w", err)
	}
	defer rows.Close()

	var fulfillers []domain.Fulfiller
	for rows.Next() {
		var f domain.Fulfiller
		if err := rows.Scan(&f.ID, &f.Name, &f.Phone, &f.Active, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning fulfiller row: %w", err)
		}
		fulfillers = append(fulfillers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fulfiller rows: %w", err)
	}

	return fulfillers, nil
}

func (r *MySQLFulfillerRepository) ListAll(ctx context.Context) ([]domain.Fulfiller, error) {
	return r.list(ctx, `SELECT `+fulfillerColumns+` FROM Fulfillers ORDER BY sortOrder, id`)
}

// ListActive returns the rotation roster. Ordering by (sortOrder, id) is the
// rank the assignment policy indexes into, so ties stay deterministic.
func (r *MySQLFulfillerRepository) ListActive(ctx context.Context) ([]domain.Fulfiller, error) {
	return r.list(ctx, `SELECT `+fulfillerColumns+` FROM Fulfillers WHERE active = 1 ORDER BY sortOrder, id`)
}

func (r *MySQLFulfillerRepository) Insert(ctx context.Context, name, phone string) (*domain.Fulfiller, error) {
	// New fulfillers join at the end of the rotation.
	query := `
		INSERT INTO Fulfillers (name, phone, active, sortOrder)
		SELECT ?, ?, 1, COALESCE(MAX(sortOrder), -1) + 1 FROM Fulfillers
	`

	result, err := r.db.ExecContext(ctx, query, name, phone)
	if err != nil {
		return nil, fmt.Errorf("inserting fulfiller: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting fulfiller id: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLFulfillerRepository) SetActive(ctx context.Context, id uint, active bool) error {
	query := `UPDATE Fulfillers SET active = ?, updatedAt = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("updating fulfiller active flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("fulfiller %d not found", id))
	}

	return nil
}

func (r *MySQLFulfillerRepository) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM Fulfillers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting fulfiller: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("fulfiller %d not found", id))
	}

	return nil
}
