package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Position is one entry in a profile's work/education history. Education
// entries carry the university name in the Organization field.
type Position struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Duration     string `json:"duration"`
	IsEducation  bool   `json:"is_education"`
}

// PositionList is stored as a JSONB column.
type PositionList []Position

func (p PositionList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PositionList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type for PositionList: %T", src)
	}
}

type Profile struct {
	ID              string       `json:"id" db:"id"`
	FullName        string       `json:"full_name" db:"full_name"`
	IsMentor        bool         `json:"is_mentor" db:"is_mentor"`
	IsMentee        bool         `json:"is_mentee" db:"is_mentee"`
	Location        *string      `json:"location" db:"location"`
	University      *string      `json:"university" db:"university"`
	CurrentIndustry *string      `json:"current_industry" db:"current_industry"`
	CurrentPosition *string      `json:"current_position" db:"current_position"`
	CurrentCompany  *string      `json:"current_company" db:"current_company"`
	PastPositions   PositionList `json:"past_positions" db:"past_positions"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// MentorPreferences holds a mentor's help offering and per-factor
// importances. Importances are 0-5, 0 meaning "don't care".
type MentorPreferences struct {
	MentorID          string   `json:"mentor_id" db:"mentor_id"`
	HelpTags          []string `json:"help_tags" db:"help_tags"`
	HelpDetails       string   `json:"help_details" db:"help_details"`
	Location          int      `json:"location" db:"pref_location"`
	University        int      `json:"university" db:"pref_university"`
	GPA               int      `json:"gpa" db:"pref_gpa"`
	IndustryAlignment int      `json:"industry_alignment" db:"pref_industry_alignment"`
	HelpType          int      `json:"help_type" db:"pref_help_type"`
	PathAlignment     int      `json:"path_alignment" db:"pref_path_alignment"`
}

// MenteeNeeds holds what a mentee is looking for and the free-text goals
// used by goal-alignment scoring.
type MenteeNeeds struct {
	MenteeID string   `json:"mentee_id" db:"mentee_id"`
	GPA      *float64 `json:"gpa" db:"gpa"`
	Goals    string   `json:"goals" db:"goals"`
	MoreInfo string   `json:"more_info" db:"more_info"`
	HelpTags []string `json:"help_tags" db:"help_tags"`
}
