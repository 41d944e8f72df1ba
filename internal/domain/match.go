package domain

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusDeclined MatchStatus = "declined"
	MatchStatusExpired  MatchStatus = "expired"
)

// Terminal reports whether the status accepts no further transitions.
func (s MatchStatus) Terminal() bool {
	return s == MatchStatusAccepted || s == MatchStatusDeclined || s == MatchStatusExpired
}

// Match is the persisted result of a scored mentor/mentee pair. Rows are
// never deleted, only status-transitioned.
type Match struct {
	ID              string      `json:"id" db:"id"`
	MentorID        string      `json:"mentor_id" db:"mentor_id"`
	MenteeID        string      `json:"mentee_id" db:"mentee_id"`
	Status          MatchStatus `json:"status" db:"status"`
	BilateralScore  float64     `json:"bilateral_score" db:"bilateral_score"`
	MentorScore     float64     `json:"mentor_score" db:"mentor_score"`
	MenteeScore     float64     `json:"mentee_score" db:"mentee_score"`
	GoalAlignment   float64     `json:"goal_alignment" db:"goal_alignment"`
	GoalReasoning   *string     `json:"goal_reasoning" db:"goal_reasoning"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	MentorDecidedAt *time.Time  `json:"mentor_decided_at" db:"mentor_decided_at"`
	MenteeDecidedAt *time.Time  `json:"mentee_decided_at" db:"mentee_decided_at"`
	ExpiresAt       time.Time   `json:"expires_at" db:"expires_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// Active reports whether the match still blocks a new request for the same
// pair (not declined, not expired).
func (m *Match) Active() bool {
	return m.Status == MatchStatusPending || m.Status == MatchStatusAccepted
}

func (m *Match) HasUser(userID string) bool {
	return m.MentorID == userID || m.MenteeID == userID
}

// Overdue reports whether a pending match has outlived its response window.
func (m *Match) Overdue(now time.Time) bool {
	return m.Status == MatchStatusPending && now.After(m.ExpiresAt)
}

// Conversation is created exactly once per accepted match.
type Conversation struct {
	ID        string    `json:"id" db:"id"`
	MatchID   string    `json:"match_id" db:"match_id"`
	MentorID  string    `json:"mentor_id" db:"mentor_id"`
	MenteeID  string    `json:"mentee_id" db:"mentee_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// OtherParty returns the counterpart of userID in the conversation.
func (c *Conversation) OtherParty(userID string) (string, bool) {
	if c.MentorID == userID {
		return c.MenteeID, true
	}
	if c.MenteeID == userID {
		return c.MentorID, true
	}
	return "", false
}
