package analysis

// Reason classifies why a pipeline run ended in a fallback result.
type Reason string

const (
	ReasonRateLimited      Reason = "rate_limited"
	ReasonBudgetExceeded   Reason = "budget_exceeded"
	ReasonRetriesExhausted Reason = "retries_exhausted"
	ReasonUnparseable      Reason = "unparseable_payload"
)

func conclusionFor(reason Reason) string {
	switch reason {
	case ReasonRateLimited:
		return "Resume analysis is temporarily unavailable because the daily request limit was reached."
	case ReasonBudgetExceeded:
		return "Resume analysis could not be completed because the submitted documents exceed the size limit."
	case ReasonRetriesExhausted:
		return "Resume analysis could not be completed because the analysis service did not respond."
	case ReasonUnparseable:
		return "Resume analysis could not be completed because the analysis service returned an unreadable result."
	}
	return "Resume analysis could not be completed."
}

// Fallback builds the fixed "analysis unavailable" result. It satisfies the
// full schema so callers never see an error in place of the expected shape.
// Scores sit at the neutral midpoint, not zero.
func Fallback(reason Reason) map[string]any {
	out := make(map[string]any)
	for _, f := range Schema() {
		out[f.Name] = DefaultValue(f)
	}
	out["job_description_validity"] = notAssessed
	out["resume_validity"] = notAssessed
	out["resume_eligibility"] = "Cannot determine"
	out["short_conclusion"] = conclusionFor(reason)
	out["overall_fit_summary"] = "The analysis service was unable to produce a full assessment for this request. Please try again later."
	out["resume_improvement_priority"] = []any{
		"Try the analysis again later",
		"Verify the job description contains a title, required skills, and responsibilities",
		"Ensure the resume is a supported format (PDF, DOCX, or TXT)",
	}
	return out
}
