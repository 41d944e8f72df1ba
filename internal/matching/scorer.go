package matching

import (
	"strings"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

// GapBand configures the experience-gap factor: the score rises linearly
// to a plateau of 1.0 over [MinIdeal, MaxIdeal] years and falls linearly
// back to 0 at UpperBound.
type GapBand struct {
	MinIdeal   float64
	MaxIdeal   float64
	UpperBound float64
}

// DefaultGapBand is the 3-7 year ideal band with a 12 year cutoff.
func DefaultGapBand() GapBand {
	return GapBand{MinIdeal: 3, MaxIdeal: 7, UpperBound: 12}
}

// Scorer computes the six locally-derivable compatibility factors for a
// mentor/mentee pair. Goal alignment is supplied separately because it is
// the only factor with an external dependency.
type Scorer struct {
	tiers TierTable
	band  GapBand
}

func NewScorer(tiers TierTable, band GapBand) *Scorer {
	return &Scorer{tiers: tiers, band: band}
}

// ScoreFactors is pure and deterministic; GoalAlignment is left at zero
// for the caller to fill in.
func (s *Scorer) ScoreFactors(mentor *domain.Profile, prefs *domain.MentorPreferences, mentee *domain.Profile, needs *domain.MenteeNeeds) domain.FactorVector {
	return domain.FactorVector{
		SharedUniversity:   s.sharedUniversity(mentor, mentee),
		UniversityPrestige: s.universityPrestige(mentor, mentee),
		IndustryAlignment:  industryAlignment(mentor, mentee),
		HelpTypeMatch:      HelpTypeMatch(prefs.HelpTags, needs.HelpTags),
		LocationProximity:  locationProximity(mentor, mentee),
		ExperienceGap:      s.experienceGap(mentor, mentee),
	}
}

func normalizeUniversity(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (s *Scorer) sharedUniversity(mentor, mentee *domain.Profile) float64 {
	mu := ExtractUniversity(mentor)
	su := ExtractUniversity(mentee)
	if mu == "" || su == "" {
		return 0
	}
	if normalizeUniversity(mu) == normalizeUniversity(su) {
		return 1
	}
	return 0
}

func (s *Scorer) universityPrestige(mentor, mentee *domain.Profile) float64 {
	mt := s.tiers.TierOf(ExtractUniversity(mentor))
	st := s.tiers.TierOf(ExtractUniversity(mentee))

	diff := mt - st
	if diff < 0 {
		diff = -diff
	}
	score := 1.0 - float64(diff)/3.0
	return clamp01(score)
}

func industryAlignment(mentor, mentee *domain.Profile) float64 {
	if mentor.CurrentIndustry == nil || mentee.CurrentIndustry == nil {
		return 0
	}
	mi := strings.TrimSpace(*mentor.CurrentIndustry)
	si := strings.TrimSpace(*mentee.CurrentIndustry)
	if mi == "" || si == "" {
		return 0
	}
	if strings.EqualFold(mi, si) {
		return 1
	}
	return 0
}

// HelpTypeMatch is the fraction of the mentee's needed topics the mentor
// covers. An empty need set scores 0 rather than erroring.
func HelpTypeMatch(mentorTags, menteeTags []string) float64 {
	if len(menteeTags) == 0 {
		return 0
	}

	offered := make(map[string]struct{}, len(mentorTags))
	for _, t := range mentorTags {
		offered[t] = struct{}{}
	}

	// menteeTags is a set; count distinct needs once
	needed := make(map[string]struct{}, len(menteeTags))
	overlap := 0
	for _, t := range menteeTags {
		if _, dup := needed[t]; dup {
			continue
		}
		needed[t] = struct{}{}
		if _, ok := offered[t]; ok {
			overlap++
		}
	}

	score := float64(overlap) / float64(len(needed))
	return clamp01(score)
}

// parseLocation splits a "City, State" string.
func parseLocation(location string) (city, state string, ok bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	city = strings.TrimSpace(parts[0])
	state = strings.TrimSpace(parts[1])
	if city == "" || state == "" {
		return "", "", false
	}
	return city, state, true
}

func locationProximity(mentor, mentee *domain.Profile) float64 {
	if mentor.Location == nil || mentee.Location == nil {
		return 0
	}
	mc, ms, ok1 := parseLocation(*mentor.Location)
	sc, ss, ok2 := parseLocation(*mentee.Location)
	if !ok1 || !ok2 {
		return 0
	}

	switch {
	case strings.EqualFold(mc, sc) && strings.EqualFold(ms, ss):
		return 1.0
	case strings.EqualFold(ms, ss):
		return 0.5
	default:
		return 0
	}
}

func (s *Scorer) experienceGap(mentor, mentee *domain.Profile) float64 {
	gap := TotalExperience(mentor) - TotalExperience(mentee)
	return s.band.Score(gap)
}

// Score maps a years-of-experience gap onto [0, 1]: zero at or below a
// 0-year gap, a plateau of 1.0 across the ideal band, linear on both
// flanks.
func (b GapBand) Score(gap float64) float64 {
	switch {
	case gap <= 0:
		return 0
	case gap < b.MinIdeal:
		return clamp01(gap / b.MinIdeal)
	case gap <= b.MaxIdeal:
		return 1.0
	case gap < b.UpperBound:
		return clamp01((b.UpperBound - gap) / (b.UpperBound - b.MaxIdeal))
	default:
		return 0
	}
}

// EligibleMatch applies the hard requirements that gate scoring entirely:
// the mentor must cover at least one needed topic and must have strictly
// more experience than the mentee.
func EligibleMatch(mentor *domain.Profile, prefs *domain.MentorPreferences, mentee *domain.Profile, needs *domain.MenteeNeeds) (bool, string) {
	if HelpTypeMatch(prefs.HelpTags, needs.HelpTags) == 0 {
		return false, "no help type overlap"
	}
	if TotalExperience(mentor) <= TotalExperience(mentee) {
		return false, "insufficient experience gap"
	}
	return true, ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
