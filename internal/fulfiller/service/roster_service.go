package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"playvault/internal/domain"
	apperrors "playvault/internal/errors"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type FulfillerRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Fulfiller, error)
	ListAll(ctx context.Context) ([]domain.Fulfiller, error)
	Insert(ctx context.Context, name, phone string) (*domain.Fulfiller, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, tx *sql.Tx, id uint) error
}

type OrderAssignments interface {
	ClearAssignments(ctx context.Context, tx *sql.Tx, fulfillerID uint) error
}

// RosterService manages the fulfiller directory. Deleting a fulfiller and
// clearing its order assignments happen in one transaction so no order is
// left pointing at a roster entry that no longer exists.
type RosterService struct {
	db          TransactionManager
	fulfillers  FulfillerRepository
	assignments OrderAssignments
	logger      *zap.Logger
}

func NewRosterService(
	db TransactionManager,
	fulfillers FulfillerRepository,
	assignments OrderAssignments,
	logger *zap.Logger,
) *RosterService {
	return &RosterService{
		db:          db,
		fulfillers:  fulfillers,
		assignments: assignments,
		logger:      logger,
	}
}

func (s *RosterService) List(ctx context.Context) ([]domain.Fulfiller, error) {
	return s.fulfillers.ListAll(ctx)
}

func (s *RosterService) Add(ctx context.Context, name, phone string) (*domain.Fulfiller, error) {
	var details []apperrors.ValidationDetail
	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if phone == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone is required"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid fulfiller", details...)
	}

	fulfiller, err := s.fulfillers.Insert(ctx, name, phone)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fulfiller added",
		zap.Uint("fulfillerId", fulfiller.ID),
		zap.Int("sortOrder", fulfiller.SortOrder),
	)
	return fulfiller, nil
}

func (s *RosterService) SetActive(ctx context.Context, id uint, active bool) (*domain.Fulfiller, error) {
	if err := s.fulfillers.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	s.logger.Info("fulfiller active flag updated",
		zap.Uint("fulfillerId", id),
		zap.Bool("active", active),
	)
	return s.fulfillers.FindByID(ctx, id)
}

func (s *RosterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.fulfillers.FindByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning fulfiller delete transaction: %w", err)
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	if err := s.assignments.ClearAssignments(ctx, tx, id); err != nil {
		return err
	}
	if err := s.fulfillers.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing fulfiller delete transaction: %w", err)
	}

	s.logger.Info("fulfiller deleted", zap.Uint("fulfillerId", id))
	return nil
}
