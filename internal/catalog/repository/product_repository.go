package repository

import (
	"context"
	"database/sql"
	"fmt"

	"playvault/internal/domain"
	"playvault/internal/errors"
)

// MySQLProductRepository reads the catalog maintained by the storefront CRUD
// screens. The order engine only consumes it at checkout time.
type MySQLProductRepository struct {
	db *sql.DB
}

func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, price, isActive, createdAt, updatedAt
		FROM Products
		WHERE id = ?
	`

	var product domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &product, nil
}
