package alignment

import (
	"context"
	"fmt"
	"strings"
)

const fallbackMarker = "(heuristic fallback)"

// Rule-based contribution caps: the help-tag overlap contributes at most
// 0.4 regardless of how many tags overlap.
const (
	industryMatchBonus = 0.5
	perTagBonus        = 0.3
	maxOverlapBonus    = 0.4
)

// RuleBased is the deterministic, network-free fallback scorer.
type RuleBased struct{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Score never fails; missing inputs simply contribute nothing.
func (r *RuleBased) Score(_ context.Context, req Request) (Result, error) {
	var score float64
	var reasons []string

	if req.MenteeIndustry != "" && strings.EqualFold(req.MenteeIndustry, req.Mentor.Industry) {
		score += industryMatchBonus
		reasons = append(reasons, "Same industry")
	}

	offered := make(map[string]struct{}, len(req.Mentor.HelpTags))
	for _, t := range req.Mentor.HelpTags {
		offered[strings.ToLower(t)] = struct{}{}
	}
	overlap := 0
	seen := make(map[string]struct{}, len(req.NeedTags))
	for _, t := range req.NeedTags {
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := offered[key]; ok {
			overlap++
		}
	}
	if overlap > 0 {
		bonus := perTagBonus * float64(overlap)
		if bonus > maxOverlapBonus {
			bonus = maxOverlapBonus
		}
		score += bonus
		reasons = append(reasons, fmt.Sprintf("Can help with %d needed areas", overlap))
	}

	if score > 1.0 {
		score = 1.0
	}

	reasoning := "Limited alignment"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}

	return Result{
		Score:     score,
		Reasoning: reasoning + " " + fallbackMarker,
		Fallback:  true,
	}, nil
}
