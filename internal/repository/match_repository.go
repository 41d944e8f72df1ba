package repository

import (
	"context"
	"time"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

type MatchRepository interface {
	// Create inserts a new pending match. Returns
	// domain.ErrDuplicateMatch when an active row already exists for the
	// pair.
	Create(ctx context.Context, match *domain.Match) error

	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetActiveByPair(ctx context.Context, mentorID, menteeID string) (*domain.Match, error)

	ListSent(ctx context.Context, mentorID string) ([]*domain.Match, error)
	ListReceived(ctx context.Context, menteeID string) ([]*domain.Match, error)

	// Counterpart IDs of active matches, used to exclude already-matched
	// candidates from feeds.
	ListActiveMenteeIDs(ctx context.Context, mentorID string) ([]string, error)
	ListActiveMentorIDs(ctx context.Context, menteeID string) ([]string, error)

	// TransitionFromPending applies a single compare-and-set from pending
	// to a terminal status and returns the updated row. A row that is no
	// longer pending yields domain.ErrMatchNotPending, so exactly one of
	// two racing responders wins.
	TransitionFromPending(ctx context.Context, id string, to domain.MatchStatus, menteeDecidedAt *time.Time) (*domain.Match, error)

	// ExpireOverdue marks every pending match past its expiry as expired
	// and returns how many rows changed.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
