package domain

// FactorVector holds the seven compatibility factors for one mentor/mentee
// pair. Every component is in [0.0, 1.0]. It is ephemeral: only the
// combined scores are persisted.
type FactorVector struct {
	SharedUniversity   float64 `json:"shared_university"`
	UniversityPrestige float64 `json:"university_prestige"`
	IndustryAlignment  float64 `json:"industry_alignment"`
	HelpTypeMatch      float64 `json:"help_type_match"`
	LocationProximity  float64 `json:"location_proximity"`
	ExperienceGap      float64 `json:"experience_gap"`
	GoalAlignment      float64 `json:"goal_alignment"`
}

// Mean returns the unweighted average of all seven factors.
func (v FactorVector) Mean() float64 {
	sum := v.SharedUniversity + v.UniversityPrestige + v.IndustryAlignment +
		v.HelpTypeMatch + v.LocationProximity + v.ExperienceGap + v.GoalAlignment
	return sum / 7.0
}

// FactorWeights binds an importance (0-5, 0 = excluded) to each of the
// seven factors. A closed struct rather than a map so factor names are
// checked at compile time.
type FactorWeights struct {
	SharedUniversity   int
	UniversityPrestige int
	IndustryAlignment  int
	HelpTypeMatch      int
	LocationProximity  int
	ExperienceGap      int
	GoalAlignment      int
}

// MaxImportance is the top of the 0-5 importance scale.
const MaxImportance = 5

// DefaultMenteeWeights is the fixed weight vector used for the mentee side
// until mentee-customizable weights exist: every factor at maximum
// importance.
func DefaultMenteeWeights() FactorWeights {
	return FactorWeights{
		SharedUniversity:   MaxImportance,
		UniversityPrestige: MaxImportance,
		IndustryAlignment:  MaxImportance,
		HelpTypeMatch:      MaxImportance,
		LocationProximity:  MaxImportance,
		ExperienceGap:      MaxImportance,
		GoalAlignment:      MaxImportance,
	}
}

// Weights maps the mentor's stored importances onto the factor vector.
// The university importance covers both university factors, path_alignment
// covers the experience gap, and goal alignment always carries maximum
// importance.
func (p *MentorPreferences) Weights() FactorWeights {
	return FactorWeights{
		SharedUniversity:   p.University,
		UniversityPrestige: p.University,
		IndustryAlignment:  p.IndustryAlignment,
		HelpTypeMatch:      p.HelpType,
		LocationProximity:  p.Location,
		ExperienceGap:      p.PathAlignment,
		GoalAlignment:      MaxImportance,
	}
}
