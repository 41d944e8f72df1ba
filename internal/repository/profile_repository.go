package repository

import (
	"context"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

// ProfileRepository is the read side of the profile store. Profile
// mutation belongs to the onboarding/editing flows, which live outside
// this service.
type ProfileRepository interface {
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	GetMentorPreferences(ctx context.Context, mentorID string) (*domain.MentorPreferences, error)
	GetMenteeNeeds(ctx context.Context, menteeID string) (*domain.MenteeNeeds, error)

	// Candidate pools, filtered by role flag.
	ListMenteeCandidates(ctx context.Context, limit int) ([]*domain.Profile, error)
	ListMentorCandidates(ctx context.Context, limit int) ([]*domain.Profile, error)
}
