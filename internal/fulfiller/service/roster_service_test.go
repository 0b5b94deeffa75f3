package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playvault/internal/domain"
	apperrors "playvault/internal/errors"
	fulfillerrepo "playvault/internal/fulfiller/repository"
	orderrepo "playvault/internal/order/repository"
	"playvault/internal/testutil"
)

type mockFulfillerRepo struct {
	FindByIDFunc  func(ctx context.Context, id uint) (*domain.Fulfiller, error)
	ListAllFunc   func(ctx context.Context) ([]domain.Fulfiller, error)
	InsertFunc    func(ctx context.Context, name, phone string) (*domain.Fulfiller, error)
	SetActiveFunc func(ctx context.Context, id uint, active bool) error
	DeleteFunc    func(ctx context.Context, tx *sql.Tx, id uint) error
}

func (m *mockFulfillerRepo) FindByID(ctx context.Context, id uint) (*domain.Fulfiller, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockFulfillerRepo) ListAll(ctx context.Context) ([]domain.Fulfiller, error) {
	return m.ListAllFunc(ctx)
}

func (m *mockFulfillerRepo) Insert(ctx context.Context, name, phone string) (*domain.Fulfiller, error) {
	return m.InsertFunc(ctx, name, phone)
}

func (m *mockFulfillerRepo) SetActive(ctx context.Context, id uint, active bool) error {
	return m.SetActiveFunc(ctx, id, active)
}

func (m *mockFulfillerRepo) Delete(ctx context.Context, tx *sql.Tx, id uint) error {
	return m.DeleteFunc(ctx, tx, id)
}

type mockTxManager struct {
	BeginTxFunc func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func (m *mockTxManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFunc(ctx, opts)
}

type mockAssignments struct {
	ClearAssignmentsFunc func(ctx context.Context, tx *sql.Tx, fulfillerID uint) error
}

func (m *mockAssignments) ClearAssignments(ctx context.Context, tx *sql.Tx, fulfillerID uint) error {
	return m.ClearAssignmentsFunc(ctx, tx, fulfillerID)
}

// Unit Tests

func TestRosterService_Add_Validation(t *testing.T) {
	svc := NewRosterService(&mockTxManager{}, &mockFulfillerRepo{}, &mockAssignments{}, zap.NewNop())

	tests := []struct {
		name, fulfillerName, phone, wantField string
	}{
		{"missing name", "", "628111", "name"},
		{"missing phone", "Agus", "", "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.fulfillerName, tt.phone)
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, ve.Details[0].Field)
		})
	}
}

func TestRosterService_Add(t *testing.T) {
	repo := &mockFulfillerRepo{
		InsertFunc: func(ctx context.Context, name, phone string) (*domain.Fulfiller, error) {
			return &domain.Fulfiller{ID: 1, Name: name, Phone: phone, Active: true, SortOrder: 0}, nil
		},
	}
	svc := NewRosterService(&mockTxManager{}, repo, &mockAssignments{}, zap.NewNop())

	fulfiller, err := svc.Add(context.Background(), "Agus", "628111")
	require.NoError(t, err)
	assert.Equal(t, uint(1), fulfiller.ID)
	assert.Equal(t, "Agus", fulfiller.Name)
}

func TestRosterService_SetActive_ReturnsUpdatedEntry(t *testing.T) {
	var gotActive bool
	repo := &mockFulfillerRepo{
		SetActiveFunc: func(ctx context.Context, id uint, active bool) error {
			gotActive = active
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Fulfiller, error) {
			return &domain.Fulfiller{ID: id, Name: "Agus", Active: false}, nil
		},
	}
	svc := NewRosterService(&mockTxManager{}, repo, &mockAssignments{}, zap.NewNop())

	fulfiller, err := svc.SetActive(context.Background(), 3, false)
	require.NoError(t, err)
	assert.False(t, gotActive)
	assert.Equal(t, uint(3), fulfiller.ID)
}

func TestRosterService_Delete_NotFoundShortCircuits(t *testing.T) {
	txStarted := false
	repo := &mockFulfillerRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Fulfiller, error) {
			return nil, apperrors.NewNotFoundError("fulfiller 9 not found")
		},
	}
	tm := &mockTxManager{
		BeginTxFunc: func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
			txStarted = true
			return nil, nil
		},
	}
	svc := NewRosterService(tm, repo, &mockAssignments{}, zap.NewNop())

	err := svc.Delete(context.Background(), 9)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.False(t, txStarted, "no transaction should start for a missing fulfiller")
}

// Integration Tests

func TestRosterService_Delete_ClearsAssignments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	fulfillers := fulfillerrepo.NewMySQLFulfillerRepository(db)
	orders := orderrepo.NewMySQLOrderRepository(db)
	svc := NewRosterService(db, fulfillers, orders, zap.NewNop())

	ctx := context.Background()

	fulfiller, err := fulfillers.Insert(ctx, "Agus", "628111")
	require.NoError(t, err)

	order := &domain.Order{
		ID:                  uuid.New().String(),
		CustomerID:          "cust-1",
		CustomerName:        "Budi",
		CustomerPhone:       "628222",
		ProductID:           7,
		ProductName:         "Epic Account",
		ProductPrice:        100000,
		Quantity:            1,
		TotalPrice:          100000,
		FulfillmentStatus:   domain.FulfillmentPending,
		PaymentStatus:       domain.PaymentWaiting,
		PaymentExpiry:       time.Now().Add(30 * time.Minute),
		AssignedFulfillerID: &fulfiller.ID,
	}
	require.NoError(t, orders.Insert(ctx, order))

	require.NoError(t, svc.Delete(ctx, fulfiller.ID))

	_, err = fulfillers.FindByID(ctx, fulfiller.ID)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	// The order survives with its assignment cleared.
	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, found.AssignedFulfillerID)
}
