package alignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleBasedScore(t *testing.T) {
	rb := NewRuleBased()

	t.Run("industry and tag overlap", func(t *testing.T) {
		res, err := rb.Score(context.Background(), Request{
			MenteeIndustry: "Technology",
			NeedTags:       []string{"Career Growth"},
			Mentor: MentorSummary{
				Industry: "technology",
				HelpTags: []string{"Career Growth", "Leadership"},
			},
		})
		require.NoError(t, err)

		assert.InDelta(t, 0.8, res.Score, 1e-9, "0.5 industry + 0.3 one tag")
		assert.True(t, res.Fallback)
		assert.Contains(t, res.Reasoning, "Same industry")
		assert.Contains(t, res.Reasoning, "(heuristic fallback)")
	})

	t.Run("tag overlap is capped", func(t *testing.T) {
		res, err := rb.Score(context.Background(), Request{
			NeedTags: []string{"Career Growth", "Leadership", "Resume Review"},
			Mentor: MentorSummary{
				HelpTags: []string{"Career Growth", "Leadership", "Resume Review"},
			},
		})
		require.NoError(t, err)

		assert.InDelta(t, 0.4, res.Score, 1e-9, "three tags still cap at 0.4")
	})

	t.Run("nothing aligns", func(t *testing.T) {
		res, err := rb.Score(context.Background(), Request{
			MenteeIndustry: "Finance",
			NeedTags:       []string{"Interview Prep"},
			Mentor: MentorSummary{
				Industry: "Healthcare",
				HelpTags: []string{"Leadership"},
			},
		})
		require.NoError(t, err)

		assert.Zero(t, res.Score)
		assert.Equal(t, "Limited alignment (heuristic fallback)", res.Reasoning)
		assert.True(t, res.Fallback)
	})

	t.Run("duplicate need tags count once", func(t *testing.T) {
		res, err := rb.Score(context.Background(), Request{
			NeedTags: []string{"Career Growth", "career growth"},
			Mentor:   MentorSummary{HelpTags: []string{"Career Growth"}},
		})
		require.NoError(t, err)

		assert.InDelta(t, 0.3, res.Score, 1e-9)
	})
}
