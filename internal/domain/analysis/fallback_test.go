package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	reasons := []Reason{
		ReasonRateLimited,
		ReasonBudgetExceeded,
		ReasonRetriesExhausted,
		ReasonUnparseable,
	}

	t.Run("every reason yields a schema-valid result", func(t *testing.T) {
		for _, reason := range reasons {
			r := Validate(Payload{Fields: Fallback(reason)})
			assert.True(t, r.Valid, "reason %s: %v", reason, r)
		}
	})

	t.Run("scores sit at the neutral midpoint", func(t *testing.T) {
		out := Fallback(ReasonRetriesExhausted)
		assert.Equal(t, float64(50), out["score_out_of_100"])
		assert.Equal(t, float64(50), out["chance_of_selection_percentage"])
	})

	t.Run("validity fields read as not assessed", func(t *testing.T) {
		out := Fallback(ReasonUnparseable)
		assert.Equal(t, "Not assessed", out["job_description_validity"])
		assert.Equal(t, "Not assessed", out["resume_validity"])
		assert.Equal(t, "Cannot determine", out["resume_eligibility"])
	})

	t.Run("conclusion names the cause", func(t *testing.T) {
		seen := map[string]bool{}
		for _, reason := range reasons {
			out := Fallback(reason)
			conclusion, ok := out["short_conclusion"].(string)
			require.True(t, ok)
			assert.NotEmpty(t, conclusion)
			seen[conclusion] = true
		}
		// each reason gets its own wording
		assert.Len(t, seen, len(reasons))
	})

	t.Run("rate limited conclusion mentions the daily limit", func(t *testing.T) {
		out := Fallback(ReasonRateLimited)
		assert.Contains(t, out["short_conclusion"], "daily request limit")
	})

	t.Run("improvement priority offers generic guidance", func(t *testing.T) {
		out := Fallback(ReasonBudgetExceeded)
		items, ok := out["resume_improvement_priority"].([]any)
		require.True(t, ok)
		assert.Len(t, items, 3)
	})

	t.Run("nested report is fully populated", func(t *testing.T) {
		out := Fallback(ReasonRateLimited)
		report, ok := out["resume_analysis_report"].(map[string]any)
		require.True(t, ok)

		info, ok := report["candidate_information"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Not specified", info["name"])

		feedback, ok := report["section_wise_detailed_feedback"].(map[string]any)
		require.True(t, ok)
		skills, ok := feedback["skills"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Not assessed", skills["current_state"])
	})
}
