package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
)

const uniqueViolation = "23505"

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// The schema carries a partial unique index on (mentor_id, mentee_id)
	// over non-terminal rows; a violation means an active match exists.
	query := `
		INSERT INTO matches (
			id, mentor_id, mentee_id, status,
			bilateral_score, mentor_score, mentee_score, goal_alignment, goal_reasoning,
			mentor_decided_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		match.ID, match.MentorID, match.MenteeID, match.Status,
		match.BilateralScore, match.MentorScore, match.MenteeScore,
		match.GoalAlignment, match.GoalReasoning,
		match.MentorDecidedAt, match.ExpiresAt,
	).Scan(&match.CreatedAt, &match.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicateMatch
	}
	return err
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetActiveByPair(ctx context.Context, mentorID, menteeID string) (*domain.Match, error) {
	var match domain.Match
	query := `
		SELECT * FROM matches
		WHERE mentor_id = $1 AND mentee_id = $2 AND status IN ('pending', 'accepted')
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &match, query, mentorID, menteeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListSent(ctx context.Context, mentorID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `SELECT * FROM matches WHERE mentor_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &matches, query, mentorID)
	return matches, err
}

func (r *matchRepository) ListReceived(ctx context.Context, menteeID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `SELECT * FROM matches WHERE mentee_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &matches, query, menteeID)
	return matches, err
}

func (r *matchRepository) listActiveCounterparts(ctx context.Context, selectColumn, whereColumn, id string) ([]string, error) {
	var ids []string
	query := `SELECT ` + selectColumn + ` FROM matches WHERE ` + whereColumn + ` = $1 AND status IN ('pending', 'accepted')`
	err := r.db.SelectContext(ctx, &ids, query, id)
	return ids, err
}

func (r *matchRepository) ListActiveMenteeIDs(ctx context.Context, mentorID string) ([]string, error) {
	return r.listActiveCounterparts(ctx, "mentee_id", "mentor_id", mentorID)
}

func (r *matchRepository) ListActiveMentorIDs(ctx context.Context, menteeID string) ([]string, error) {
	return r.listActiveCounterparts(ctx, "mentor_id", "mentee_id", menteeID)
}

func (r *matchRepository) TransitionFromPending(ctx context.Context, id string, to domain.MatchStatus, menteeDecidedAt *time.Time) (*domain.Match, error) {
	var match domain.Match
	query := `
		UPDATE matches
		SET status = $1,
		    mentee_decided_at = COALESCE($2, mentee_decided_at),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = 'pending'
		RETURNING *
	`
	err := r.db.GetContext(ctx, &match, query, to, menteeDecidedAt, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the row is gone or another transition won the race.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrMatchNotPending
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE matches
		SET status = 'expired', updated_at = CURRENT_TIMESTAMP
		WHERE status = 'pending' AND expires_at < $1
	`
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
