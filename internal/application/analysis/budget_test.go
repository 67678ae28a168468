package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testGuard() BudgetGuard {
	return BudgetGuard{
		MaxResumeChars:  8000,
		MaxJobDescChars: 4000,
		CharsPerToken:   4,
		MaxPromptTokens: 6000,
	}
}

func TestBudgetGuardShape(t *testing.T) {
	t.Run("inputs under the ceilings pass untouched", func(t *testing.T) {
		resume := strings.Repeat("r", 500)
		jobDesc := strings.Repeat("j", 300)

		shaped, ok := testGuard().Shape(resume, jobDesc)
		assert.True(t, ok)
		assert.False(t, shaped.ResumeTruncated)
		assert.False(t, shaped.JobDescTruncated)
		assert.Equal(t, resume, shaped.ResumeText)
		assert.Equal(t, jobDesc, shaped.JobDescription)
	})

	t.Run("oversized resume is cut at its own ceiling", func(t *testing.T) {
		resume := strings.Repeat("r", 50000)

		shaped, _ := testGuard().Shape(resume, "short job description")
		assert.True(t, shaped.ResumeTruncated)
		assert.Len(t, shaped.ResumeText, 8000+len(TruncationMark))
		assert.True(t, strings.HasSuffix(shaped.ResumeText, TruncationMark))
	})

	t.Run("each field truncates independently", func(t *testing.T) {
		shaped, _ := testGuard().Shape(strings.Repeat("r", 9000), strings.Repeat("j", 100))
		assert.True(t, shaped.ResumeTruncated)
		assert.False(t, shaped.JobDescTruncated)

		shaped, _ = testGuard().Shape(strings.Repeat("r", 100), strings.Repeat("j", 5000))
		assert.False(t, shaped.ResumeTruncated)
		assert.True(t, shaped.JobDescTruncated)
	})

	t.Run("estimate is computed over the truncated text", func(t *testing.T) {
		a, _ := testGuard().Shape(strings.Repeat("r", 8000), "job description text")
		b, _ := testGuard().Shape(strings.Repeat("r", 800000), "job description text")
		// beyond the ceiling the prompt grows only by the truncation mark
		assert.InDelta(t, a.EstimatedTokens, b.EstimatedTokens, float64(len(TruncationMark)))
	})

	t.Run("prompt assembly includes both documents", func(t *testing.T) {
		shaped, _ := testGuard().Shape("the resume body", "the job description body")
		assert.Contains(t, shaped.User, "the resume body")
		assert.Contains(t, shaped.User, "the job description body")
		assert.NotEmpty(t, shaped.System)
	})

	t.Run("estimate above the token ceiling rejects", func(t *testing.T) {
		g := testGuard()
		g.MaxPromptTokens = 100 // far below what the template alone costs

		shaped, ok := g.Shape(strings.Repeat("r", 4000), strings.Repeat("j", 2000))
		assert.False(t, ok)
		assert.Greater(t, shaped.EstimatedTokens, 100)
	})

	t.Run("zero token ceiling disables the check", func(t *testing.T) {
		g := testGuard()
		g.MaxPromptTokens = 0

		_, ok := g.Shape(strings.Repeat("r", 8000), strings.Repeat("j", 4000))
		assert.True(t, ok)
	})
}

func TestTruncate(t *testing.T) {
	t.Run("at the boundary nothing happens", func(t *testing.T) {
		s := strings.Repeat("x", 100)
		out, cut := truncate(s, 100)
		assert.False(t, cut)
		assert.Equal(t, s, out)
	})

	t.Run("one past the boundary cuts", func(t *testing.T) {
		out, cut := truncate(strings.Repeat("x", 101), 100)
		assert.True(t, cut)
		assert.Equal(t, strings.Repeat("x", 100)+TruncationMark, out)
	})

	t.Run("zero ceiling disables truncation", func(t *testing.T) {
		out, cut := truncate(strings.Repeat("x", 5000), 0)
		assert.False(t, cut)
		assert.Len(t, out, 5000)
	})
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens("", 4))
	assert.Equal(t, 1, estimateTokens("abc", 4))
	assert.Equal(t, 1, estimateTokens("abcd", 4))
	assert.Equal(t, 2, estimateTokens("abcde", 4))
	assert.Equal(t, 2000, estimateTokens(strings.Repeat("x", 8000), 4))
	// a zero divisor falls back to the default heuristic
	assert.Equal(t, 2, estimateTokens("abcdefgh", 0))
}
