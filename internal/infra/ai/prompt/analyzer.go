package prompt

import "fmt"

// SystemPrompt provides strict directions so the model emits one JSON object.
// The extractor downstream still assumes it will be ignored some of the time.
func SystemPrompt() string {
	return `You are an expert HR consultant with 15+ years of experience in technical recruitment. Provide a comprehensive resume analysis in valid JSON format only. Do not include any introductory text, explanations, or markdown formatting. Start your response directly with the opening curly brace '{' and end with the closing curly brace '}'.`
}

// UserPrompt assembles the analysis request around the (already shaped)
// resume and job description texts.
func UserPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`FIRST: Validate the job description. A valid job description contains a job title or position, required skills or qualifications, and responsibilities or duties.

JOB DESCRIPTION TO VALIDATE:
%s

RESUME TO ANALYZE:
%s

IMPORTANT: Respond ONLY with valid JSON matching this structure exactly. Do not omit any fields.

{
  "job_description_validity": "Valid/Invalid with brief reasoning",
  "validation_error": "Only when the job description is invalid: specific explanation of what is missing",
  "resume_validity": "Valid/Invalid assessment of resume format and completeness",
  "resume_eligibility": "Eligible/Not Eligible/Partially Eligible",
  "score_out_of_100": 75,
  "short_conclusion": "3-4 sentence summary of overall fit",
  "chance_of_selection_percentage": 65,
  "resume_improvement_priority": ["priority 1", "priority 2", "priority 3", "priority 4"],
  "overall_fit_summary": "4-5 sentence summary covering technical fit, experience alignment, and skill gaps",
  "resume_analysis_report": {
    "candidate_information": {
      "name": "Exact name from resume or 'Not specified'",
      "position_applied": "From context or job title",
      "experience_level": "Entry Level (0-2 years)/Junior (2-4 years)/Mid-level (4-7 years)/Senior (7+ years)",
      "current_status": "Student/Recent Graduate/Professional/Job Seeker"
    },
    "strengths_analysis": {
      "technical_skills": ["skill with proficiency and evidence"],
      "project_portfolio": ["project with technologies and outcomes"],
      "educational_background": ["qualification with relevance to the job"]
    },
    "weaknesses_analysis": {
      "critical_gaps_against_job_description": ["gap with impact"],
      "technical_deficiencies": ["deficiency with explanation"],
      "resume_presentation_issues": ["issue with example"],
      "soft_skills_gaps": ["gap with evidence"],
      "missing_essential_elements": ["missing element with importance"]
    },
    "section_wise_detailed_feedback": {
      "contact_information": {"current_state": "assessment", "strengths": ["..."], "improvements": ["..."]},
      "profile_summary": {"current_state": "assessment", "strengths": ["..."], "improvements": ["..."]},
      "education": {"current_state": "assessment", "strengths": ["..."], "improvements": ["..."]},
      "skills": {"current_state": "assessment", "strengths": ["..."], "improvements": ["..."]},
      "projects": {"current_state": "assessment", "strengths": ["..."], "improvements": ["..."]},
      "missing_sections": {
        "certifications": "assessment",
        "experience": "assessment",
        "achievements": "assessment",
        "soft_skills": "assessment"
      }
    },
    "improvement_recommendations": {
      "immediate_resume_additions": ["..."],
      "immediate_priority_actions": ["..."],
      "short_term_development_goals": ["..."],
      "medium_term_objectives": ["..."]
    },
    "soft_skills_enhancement_suggestions": {
      "communication_skills": ["..."],
      "teamwork_and_collaboration": ["..."],
      "leadership_and_initiative": ["..."],
      "problem_solving_approach": ["..."]
    },
    "final_assessment": {
      "eligibility_status": "Eligible/Not Eligible/Conditionally Eligible with reasoning",
      "hiring_recommendation": "Recommend/Do Not Recommend/Consider with Conditions",
      "key_interview_areas": ["..."],
      "onboarding_requirements": ["..."],
      "long_term_potential": "assessment with growth areas"
    }
  }
}

CRITICAL REQUIREMENTS:
1. Validate the job description first; if invalid, still return the full structure with score 0 and a detailed validation_error
2. Provide concrete examples and evidence from the resume
3. Ensure all arrays contain at least 3-4 detailed items
4. The missing_sections object MUST include all four fields: certifications, experience, achievements, AND soft_skills`, jobDescription, resumeText)
}
