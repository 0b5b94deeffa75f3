package repository

import (
	"context"
	"database/sql"
	"fmt"

	"playvault/internal/domain"
)

// MySQLPaymentMethodRepository reads the payment-method toggles managed by
// the admin settings screens. The lifecycle engine only asks which methods
// are currently enabled.
type MySQLPaymentMethodRepository struct {
	db *sql.DB
}

func NewMySQLPaymentMethodRepository(db *sql.DB) *MySQLPaymentMethodRepository {
	return &MySQLPaymentMethodRepository{db: db}
}

func (r *MySQLPaymentMethodRepository) ListEnabled(ctx context.Context) ([]domain.PaymentMethod, error) {
	query := `SELECT method FROM PaymentMethods WHERE enabled = 1 ORDER BY method`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing enabled payment methods: %w", err)
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var method domain.PaymentMethod
		if err := rows.Scan(&method); err != nil {
			return nil, fmt.Errorf("scanning payment method row: %w", err)
		}
		methods = append(methods, method)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment method rows: %w", err)
	}

	return methods, nil
}
