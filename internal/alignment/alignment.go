// Package alignment scores how well a mentor's background fits a mentee's
// stated career goals. The primary implementation calls a text-generation
// service; a rule-based fallback keeps feed scoring alive when that
// service is unavailable.
package alignment

import "context"

// MentorSummary is the short mentor description sent to the scorer.
type MentorSummary struct {
	Name       string
	Role       string
	Company    string
	Industry   string
	HelpTags   []string
	Details    string
	CareerPath []string
}

// Request carries the mentee's stated goals and the mentor summary.
type Request struct {
	MenteeName     string
	Goals          string
	MoreInfo       string
	NeedTags       []string
	MenteeRole     string
	MenteeCompany  string
	MenteeIndustry string
	Mentor         MentorSummary
}

// Result is a goal-alignment score in [0, 1] with a short justification.
// Fallback marks results produced by the rule-based path.
type Result struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	Fallback  bool    `json:"fallback"`
}

// Scorer is the single capability the rest of the system depends on; the
// AI-backed and rule-based implementations are interchangeable.
type Scorer interface {
	Score(ctx context.Context, req Request) (Result, error)
}
