package analysis

// The result schema is a shared contract with the UI layer: field names must
// stay exactly as listed here. The tree below drives validation, repair, and
// fallback construction so all three agree on shape and defaults.

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindArray
	KindObject
)

// Field describes one required schema node and the conservative default used
// when the model omits or mangles it. Defaults are structural placeholders
// only, never content that could read as model-derived judgment.
type Field struct {
	Name     string
	Kind     Kind
	MinItems int // arrays: fewer elements is a warning, not an error
	Default  any
	Children []Field
}

const (
	notSpecified = "Not specified"
	notAssessed  = "Not assessed"
	// neutral midpoint so a defaulted score is not misread as "worst possible"
	neutralScore = float64(50)
)

func str(name, def string) Field  { return Field{Name: name, Kind: KindString, Default: def} }
func num(name string) Field       { return Field{Name: name, Kind: KindNumber, Default: neutralScore} }
func arr(name string, min int) Field {
	return Field{Name: name, Kind: KindArray, MinItems: min}
}
func obj(name string, children ...Field) Field {
	return Field{Name: name, Kind: KindObject, Children: children}
}

func sectionFeedback(name string) Field {
	return obj(name,
		str("current_state", notAssessed),
		arr("strengths", 0),
		arr("improvements", 0),
	)
}

// Schema returns the full required-field tree of an analysis result.
func Schema() []Field {
	return []Field{
		str("job_description_validity", "Valid"),
		str("resume_validity", "Valid"),
		str("resume_eligibility", "Partially Eligible"),
		num("score_out_of_100"),
		str("short_conclusion", "Resume analysis completed with a basic assessment. Some sections could not be generated."),
		num("chance_of_selection_percentage"),
		arr("resume_improvement_priority", 3),
		str("overall_fit_summary", "A complete assessment could not be generated for this analysis."),
		obj("resume_analysis_report",
			obj("candidate_information",
				str("name", notSpecified),
				str("position_applied", notSpecified),
				str("experience_level", notSpecified),
				str("current_status", notSpecified),
			),
			obj("strengths_analysis",
				arr("technical_skills", 2),
				arr("project_portfolio", 2),
				arr("educational_background", 2),
			),
			obj("weaknesses_analysis",
				arr("critical_gaps_against_job_description", 0),
				arr("technical_deficiencies", 0),
				arr("resume_presentation_issues", 0),
				arr("soft_skills_gaps", 0),
				arr("missing_essential_elements", 0),
			),
			obj("section_wise_detailed_feedback",
				sectionFeedback("contact_information"),
				sectionFeedback("profile_summary"),
				sectionFeedback("education"),
				sectionFeedback("skills"),
				sectionFeedback("projects"),
				obj("missing_sections",
					str("certifications", notAssessed),
					str("experience", notAssessed),
					str("achievements", notAssessed),
					str("soft_skills", notAssessed),
				),
			),
			obj("improvement_recommendations",
				arr("immediate_resume_additions", 0),
				arr("immediate_priority_actions", 0),
				arr("short_term_development_goals", 0),
				arr("medium_term_objectives", 0),
			),
			obj("soft_skills_enhancement_suggestions",
				arr("communication_skills", 0),
				arr("teamwork_and_collaboration", 0),
				arr("leadership_and_initiative", 0),
				arr("problem_solving_approach", 0),
			),
			obj("final_assessment",
				str("eligibility_status", "Partially Eligible"),
				str("hiring_recommendation", "Further review recommended"),
				arr("key_interview_areas", 0),
				arr("onboarding_requirements", 0),
				str("long_term_potential", notAssessed),
			),
		),
	}
}

// DefaultValue builds the conservative placeholder for a field. Objects are
// synthesized wholesale from their children so a missing sub-section always
// comes back complete.
func DefaultValue(f Field) any {
	switch f.Kind {
	case KindArray:
		return []any{}
	case KindObject:
		out := make(map[string]any, len(f.Children))
		for _, c := range f.Children {
			out[c.Name] = DefaultValue(c)
		}
		return out
	default:
		return f.Default
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64:
		return true
	}
	return false
}
