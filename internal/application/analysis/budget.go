package analysis

import (
	"github.com/bagaspn/resumeiq/internal/infra/ai/prompt"
)

// TruncationMark flags shortened input so logs can record degraded fidelity.
const TruncationMark = "... [truncated]"

// BudgetGuard shapes a request to fit the completion endpoint's token budget
// before any API spend happens.
type BudgetGuard struct {
	MaxResumeChars  int
	MaxJobDescChars int
	CharsPerToken   int // heuristic divisor, tune per upstream tokenizer
	MaxPromptTokens int
}

// ShapedRequest is the prompt pair actually submitted upstream, plus the
// shaping diagnostics.
type ShapedRequest struct {
	System           string
	User             string
	ResumeText       string
	JobDescription   string
	ResumeTruncated  bool
	JobDescTruncated bool
	EstimatedTokens  int
}

// Shape truncates each field to its own ceiling, assembles the full prompt,
// and estimates its token cost from the truncated text. ok=false means the
// request is too large even after truncation and the pipeline should fall
// back without spending an API call.
func (g BudgetGuard) Shape(resumeText, jobDescription string) (ShapedRequest, bool) {
	shaped := ShapedRequest{System: prompt.SystemPrompt()}
	shaped.ResumeText, shaped.ResumeTruncated = truncate(resumeText, g.MaxResumeChars)
	shaped.JobDescription, shaped.JobDescTruncated = truncate(jobDescription, g.MaxJobDescChars)
	shaped.User = prompt.UserPrompt(shaped.ResumeText, shaped.JobDescription)
	shaped.EstimatedTokens = estimateTokens(shaped.System+shaped.User, g.CharsPerToken)
	if g.MaxPromptTokens > 0 && shaped.EstimatedTokens > g.MaxPromptTokens {
		return shaped, false
	}
	return shaped, true
}

func truncate(s string, ceiling int) (string, bool) {
	if ceiling <= 0 || len(s) <= ceiling {
		return s, false
	}
	return s[:ceiling] + TruncationMark, true
}

func estimateTokens(text string, charsPerToken int) int {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}
