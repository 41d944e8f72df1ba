package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

var (
	durationNumber = regexp.MustCompile(`(\d+)`)

	// Titles of education entries start with a degree keyword, e.g.
	// "BS Computer Science" or "MBA".
	degreeKeywords = []string{"BS", "BA", "MBA", "PhD", "MD", "DO", "MFA", "MS", "MA"}
)

// ParseDuration converts a free-text duration ("3 years", "6 months") to
// fractional years. Unparseable input counts as zero.
func ParseDuration(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	m := durationNumber.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(s, "year"):
		return float64(n)
	case strings.Contains(s, "month"):
		return float64(n) / 12.0
	default:
		return 0
	}
}

func isEducation(p domain.Position) bool {
	if p.IsEducation {
		return true
	}
	for _, kw := range degreeKeywords {
		if strings.HasPrefix(p.Title, kw) {
			return true
		}
	}
	return false
}

// TotalExperience sums the durations of all non-education positions, in
// years.
func TotalExperience(profile *domain.Profile) float64 {
	var total float64
	for _, pos := range profile.PastPositions {
		if isEducation(pos) {
			continue
		}
		total += ParseDuration(pos.Duration)
	}
	return total
}

// ExtractUniversity finds the university a profile attended: the
// organization of the first education entry in the position history, or
// the explicit University field when no such entry exists.
func ExtractUniversity(profile *domain.Profile) string {
	for _, pos := range profile.PastPositions {
		if isEducation(pos) && pos.Organization != "" {
			return pos.Organization
		}
	}
	if profile.University != nil {
		return *profile.University
	}
	return ""
}
