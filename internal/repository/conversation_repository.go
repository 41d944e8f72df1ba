package repository

import (
	"context"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

type ConversationRepository interface {
	// CreateIfAbsent inserts a conversation for the match unless one
	// already exists, and returns the surviving row either way.
	CreateIfAbsent(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)

	GetByMatchID(ctx context.Context, matchID string) (*domain.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
}
