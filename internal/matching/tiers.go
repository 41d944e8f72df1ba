package matching

// TierTable classifies universities into prestige tiers 1-4, 1 being
// top-tier and 4 unranked. Injected so the reference data can be swapped
// without touching the scorer.
type TierTable interface {
	TierOf(university string) int
}

const unrankedTier = 4

// staticTierTable is the built-in reference classification.
type staticTierTable struct {
	tiers map[string]int
}

// NewStaticTierTable returns the default tier table.
func NewStaticTierTable() TierTable {
	return &staticTierTable{tiers: universityTiers}
}

func (t *staticTierTable) TierOf(university string) int {
	if university == "" {
		return unrankedTier
	}
	if tier, ok := t.tiers[university]; ok {
		return tier
	}
	return unrankedTier
}

var universityTiers = map[string]int{
	// Tier 1 - Ivy League plus Stanford, MIT, Caltech
	"Harvard University":         1,
	"Yale University":            1,
	"Princeton University":       1,
	"Columbia University":        1,
	"University of Pennsylvania": 1,
	"Cornell University":         1,
	"Brown University":           1,
	"Dartmouth College":          1,
	"Stanford University":        1,
	"MIT":                        1,
	"Caltech":                    1,

	// Tier 2 - Top 20
	"Duke University":                    2,
	"Northwestern University":            2,
	"Johns Hopkins University":           2,
	"University of Chicago":              2,
	"Rice University":                    2,
	"Vanderbilt University":              2,
	"Washington University in St. Louis": 2,
	"Notre Dame":                         2,
	"UC Berkeley":                        2,
	"UCLA":                               2,
	"Georgetown University":              2,

	// Tier 3 - Top 50
	"University of Michigan":        3,
	"University of Virginia":        3,
	"University of North Carolina":  3,
	"Georgia Tech":                  3,
	"University of Texas at Austin": 3,
	"University of Wisconsin":       3,
	"University of Illinois":        3,
	"Ohio State University":         3,
	"Penn State University":         3,
	"University of Washington":      3,
	"University of Florida":         3,
	"Purdue University":             3,
	"UC San Diego":                  3,
	"University of Maryland":        3,
}
