package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"playvault/internal/domain"
	"playvault/internal/dto"
	"playvault/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `
	id, orderNumber, customerId, customerName, customerPhone,
	productId, productName, productPrice, quantity, totalPrice,
	fulfillmentStatus, paymentStatus, paymentMethod, paymentExpiry,
	assignedFulfillerId, accountEmail, accountPassword, deliveryMethod,
	deliveredAt, createdAt, updatedAt
`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var (
		order         domain.Order
		paymentMethod sql.NullString
	)
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.CustomerID, &order.CustomerName,
		&order.CustomerPhone, &order.ProductID, &order.ProductName,
		&order.ProductPrice, &order.Quantity, &order.TotalPrice,
		&order.FulfillmentStatus, &order.PaymentStatus, &paymentMethod,
		&order.PaymentExpiry, &order.AssignedFulfillerID, &order.AccountEmail,
		&order.AccountPassword, &order.DeliveryMethod, &order.DeliveredAt,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentMethod.Valid {
		m := domain.PaymentMethod(paymentMethod.String)
		order.PaymentMethod = &m
	}
	return &order, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO Orders (
			id, customerId, customerName, customerPhone,
			productId, productName, productPrice, quantity, totalPrice,
			fulfillmentStatus, paymentStatus, paymentExpiry, assignedFulfillerId
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.ID, order.CustomerID, order.CustomerName, order.CustomerPhone,
		order.ProductID, order.ProductName, order.ProductPrice, order.Quantity,
		order.TotalPrice, order.FulfillmentStatus, order.PaymentStatus,
		order.PaymentExpiry, order.AssignedFulfillerID,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	orderNumber, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting order number: %w", err)
	}
	order.OrderNumber = uint64(orderNumber)

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, filter dto.OrderListFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders`

	var (
		conditions []string
		args       []any
	)
	if filter.CustomerID != "" {
		conditions = append(conditions, "customerId = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.FulfillmentStatus != nil {
		conditions = append(conditions, "fulfillmentStatus = ?")
		args = append(args, *filter.FulfillmentStatus)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(customerName LIKE ? OR productName LIKE ? OR orderNumber = ?)")
		like := "%" + filter.Search + "%"
		args = append(args, like, like, filter.Search)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY createdAt DESC, orderNumber DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// UpdateState is the guarded transition write shared by verify, cancel,
// refund, expire and the advisory confirm. The UPDATE only matches while the
// order still sits in the expected (fulfillment, payment) pair, so two
// concurrent actions on the same order produce exactly one winner.
func (r *MySQLOrderRepository) UpdateState(ctx context.Context, id string, from, to domain.OrderState) error {
	query := `
		UPDATE Orders
		SET fulfillmentStatus = ?, paymentStatus = ?, updatedAt = NOW()
		WHERE id = ? AND fulfillmentStatus = ? AND paymentStatus = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		to.Fulfillment, to.Payment, id, from.Fulfillment, from.Payment,
	)
	if err != nil {
		return fmt.Errorf("updating order state: %w", err)
	}

	return guardResult(result)
}

func (r *MySQLOrderRepository) SelectPaymentMethod(ctx context.Context, id string, from domain.OrderState, method domain.PaymentMethod) error {
	query := `
		UPDATE Orders
		SET paymentMethod = ?, paymentStatus = ?, updatedAt = NOW()
		WHERE id = ? AND fulfillmentStatus = ? AND paymentStatus = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		method, domain.PaymentPending, id, from.Fulfillment, from.Payment,
	)
	if err != nil {
		return fmt.Errorf("updating payment method: %w", err)
	}

	return guardResult(result)
}

// SaveCredentials stores the deliverable account pair. Both fields are
// written together; the guard keeps the write inside (PROCESSING, SUCCESS)
// and before delivery, so a typo can still be corrected.
func (r *MySQLOrderRepository) SaveCredentials(ctx context.Context, id string, email, password string) error {
	query := `
		UPDATE Orders
		SET accountEmail = ?, accountPassword = ?, updatedAt = NOW()
		WHERE id = ? AND fulfillmentStatus = ? AND paymentStatus = ? AND deliveredAt IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		email, password, id, domain.FulfillmentProcessing, domain.PaymentSuccess,
	)
	if err != nil {
		return fmt.Errorf("saving account credentials: %w", err)
	}

	return guardResult(result)
}

// MarkDelivered completes the order. deliveryMethod and deliveredAt are set
// in the same statement that flips the status, and the guard requires the
// credential pair to already be present, so delivery fields are never
// partially populated.
func (r *MySQLOrderRepository) MarkDelivered(ctx context.Context, id string, deliveryMethod string, deliveredAt time.Time) error {
	query := `
		UPDATE Orders
		SET fulfillmentStatus = ?, deliveryMethod = ?, deliveredAt = ?, updatedAt = NOW()
		WHERE id = ? AND fulfillmentStatus = ? AND paymentStatus = ?
		  AND accountEmail IS NOT NULL AND accountPassword IS NOT NULL
		  AND deliveredAt IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.FulfillmentCompleted, deliveryMethod, deliveredAt,
		id, domain.FulfillmentProcessing, domain.PaymentSuccess,
	)
	if err != nil {
		return fmt.Errorf("marking order delivered: %w", err)
	}

	return guardResult(result)
}

func (r *MySQLOrderRepository) CountAssignedTo(ctx context.Context, fulfillerIDs []uint) (int, error) {
	if len(fulfillerIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(fulfillerIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf("SELECT COUNT(*) FROM Orders WHERE assignedFulfillerId IN (%s)", placeholders)

	args := make([]any, len(fulfillerIDs))
	for i, id := range fulfillerIDs {
		args[i] = id
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting assigned orders: %w", err)
	}

	return count, nil
}

func (r *MySQLOrderRepository) ClearAssignments(ctx context.Context, tx *sql.Tx, fulfillerID uint) error {
	query := `UPDATE Orders SET assignedFulfillerId = NULL, updatedAt = NOW() WHERE assignedFulfillerId = ?`

	if _, err := tx.ExecContext(ctx, query, fulfillerID); err != nil {
		return fmt.Errorf("clearing fulfiller assignments: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	return nil
}

func guardResult(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewConflictError("order state changed concurrently, re-fetch and retry")
	}
	return nil
}
