package service

import (
	"context"

	"playvault/internal/domain"

	"go.uber.org/zap"
)

type FulfillerRoster interface {
	ListActive(ctx context.Context) ([]domain.Fulfiller, error)
}

type AssignmentCounter interface {
	CountAssignedTo(ctx context.Context, fulfillerIDs []uint) (int, error)
}

// AssignmentService distributes new orders across active fulfillers in a
// round-robin over the (sortOrder, id) ranking. The rotation cursor is not
// stored anywhere: it is derived from how many orders are already assigned to
// currently-active fulfillers, so roster changes reflow the rotation instead
// of leaving gaps.
//
// Assignment is advisory. Any failure here logs a warning and leaves the
// order unassigned; it never blocks order creation.
type AssignmentService struct {
	roster  FulfillerRoster
	counter AssignmentCounter
	logger  *zap.Logger
}

func NewAssignmentService(roster FulfillerRoster, counter AssignmentCounter, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		roster:  roster,
		counter: counter,
		logger:  logger,
	}
}

func (s *AssignmentService) NextFulfiller(ctx context.Context) *domain.Fulfiller {
	active, err := s.roster.ListActive(ctx)
	if err != nil {
		s.logger.Warn("listing active fulfillers failed, leaving order unassigned", zap.Error(err))
		return nil
	}
	if len(active) == 0 {
		return nil
	}

	ids := make([]uint, len(active))
	for i, f := range active {
		ids[i] = f.ID
	}

	assigned, err := s.counter.CountAssignedTo(ctx, ids)
	if err != nil {
		s.logger.Warn("counting assigned orders failed, leaving order unassigned", zap.Error(err))
		return nil
	}

	next := active[assigned%len(active)]
	return &next
}
