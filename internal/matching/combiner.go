package matching

import (
	"math"

	"github.com/beaconhq/beacon-backend/internal/domain"
)

// Bilateral weighting: the initiating side commits ongoing time, so the
// mentor's view carries more of the combined score.
const (
	mentorShare = 0.6
	menteeShare = 0.4
)

// Bilateral is the combined result of scoring one pair, on a 0-100 scale.
type Bilateral struct {
	BilateralScore float64 `json:"bilateral_score"`
	MentorScore    float64 `json:"mentor_score"`
	MenteeScore    float64 `json:"mentee_score"`
}

// Combine produces the two one-sided scores and their 60/40 blend. Each
// one-sided score is a weighted average over factors with weight > 0; a
// fully zero weight vector degrades to the unweighted mean of all seven
// factors so the result is always defined.
func Combine(factors domain.FactorVector, mentorWeights, menteeWeights domain.FactorWeights) Bilateral {
	mentorScore := round1(sideScore(factors, mentorWeights) * 100)
	menteeScore := round1(sideScore(factors, menteeWeights) * 100)
	bilateral := round1(mentorShare*mentorScore + menteeShare*menteeScore)

	return Bilateral{
		BilateralScore: bilateral,
		MentorScore:    mentorScore,
		MenteeScore:    menteeScore,
	}
}

func sideScore(f domain.FactorVector, w domain.FactorWeights) float64 {
	pairs := [7]struct {
		score  float64
		weight int
	}{
		{f.SharedUniversity, w.SharedUniversity},
		{f.UniversityPrestige, w.UniversityPrestige},
		{f.IndustryAlignment, w.IndustryAlignment},
		{f.HelpTypeMatch, w.HelpTypeMatch},
		{f.LocationProximity, w.LocationProximity},
		{f.ExperienceGap, w.ExperienceGap},
		{f.GoalAlignment, w.GoalAlignment},
	}

	var weightedSum, totalWeight float64
	for _, p := range pairs {
		if p.weight > 0 {
			weightedSum += p.score * float64(p.weight)
			totalWeight += float64(p.weight)
		}
	}

	if totalWeight == 0 {
		return f.Mean()
	}
	return weightedSum / totalWeight
}

// AcceptanceProbability estimates how likely the mentee is to accept,
// from the mentee-side score (0-100).
func AcceptanceProbability(menteeScore float64) float64 {
	switch {
	case menteeScore >= 90:
		return 0.95
	case menteeScore >= 80:
		return 0.85
	case menteeScore >= 70:
		return 0.70
	case menteeScore >= 60:
		return 0.50
	case menteeScore >= 50:
		return 0.30
	case menteeScore >= 40:
		return 0.20
	default:
		return 0.10
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
