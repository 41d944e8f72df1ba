package domain

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrPreferencesNotFound  = errors.New("mentor preferences not found")
	ErrNeedsNotFound        = errors.New("mentee needs not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrDuplicateMatch rejects a second request for a pair that already
	// has a pending or accepted match.
	ErrDuplicateMatch = errors.New("active match already exists for this pair")

	// ErrMatchNotPending rejects a response to a match that has already
	// reached a terminal status.
	ErrMatchNotPending = errors.New("match is not pending")

	// ErrNotMatchParticipant rejects a response from anyone but the
	// addressed mentee.
	ErrNotMatchParticipant = errors.New("user is not the addressed party of this match")
)
