package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchStatusTerminal(t *testing.T) {
	assert.False(t, MatchStatusPending.Terminal())
	assert.True(t, MatchStatusAccepted.Terminal())
	assert.True(t, MatchStatusDeclined.Terminal())
	assert.True(t, MatchStatusExpired.Terminal())
}

func TestMatchActive(t *testing.T) {
	assert.True(t, (&Match{Status: MatchStatusPending}).Active())
	assert.True(t, (&Match{Status: MatchStatusAccepted}).Active())
	assert.False(t, (&Match{Status: MatchStatusDeclined}).Active())
	assert.False(t, (&Match{Status: MatchStatusExpired}).Active())
}

func TestMatchOverdue(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	m := &Match{Status: MatchStatusPending, ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, m.Overdue(now))

	m.ExpiresAt = now.Add(time.Minute)
	assert.False(t, m.Overdue(now))

	// Terminal rows are never overdue, whatever their timestamp says.
	m = &Match{Status: MatchStatusAccepted, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, m.Overdue(now))
}

func TestConversationOtherParty(t *testing.T) {
	c := &Conversation{MentorID: "mentor-1", MenteeID: "mentee-1"}

	other, ok := c.OtherParty("mentor-1")
	assert.True(t, ok)
	assert.Equal(t, "mentee-1", other)

	other, ok = c.OtherParty("mentee-1")
	assert.True(t, ok)
	assert.Equal(t, "mentor-1", other)

	_, ok = c.OtherParty("stranger")
	assert.False(t, ok)
}
