package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/repository"
)

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) CreateIfAbsent(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	// Unique index on match_id makes the insert a no-op when a
	// conversation already exists; the follow-up read returns the
	// surviving row in both cases.
	query := `
		INSERT INTO conversations (id, match_id, mentor_id, mentee_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, conv.ID, conv.MatchID, conv.MentorID, conv.MenteeID); err != nil {
		return nil, err
	}
	return r.GetByMatchID(ctx, conv.MatchID)
}

func (r *conversationRepository) GetByMatchID(ctx context.Context, matchID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := `SELECT * FROM conversations WHERE match_id = $1`
	err := r.db.GetContext(ctx, &conv, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	var convs []*domain.Conversation
	query := `
		SELECT * FROM conversations
		WHERE mentor_id = $1 OR mentee_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &convs, query, userID)
	return convs, err
}
