package analysis

import (
	"encoding/json"
	"time"
)

// AnalysisID identifier type
type AnalysisID string

// Status records how the stored result was produced, so degraded results can
// be told apart from clean ones in storage.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusRepaired  Status = "repaired"
	StatusFallback  Status = "fallback"
)

// Analysis is one stored pipeline run: the schema-conformant result plus the
// diagnostics operators need (status, reason, extraction strategy, truncation
// flags, timing).
type Analysis struct {
	ID               AnalysisID      `json:"id"`
	ClientKey        string          `json:"client_key"`
	ResumeFilename   string          `json:"resume_filename"`
	JobDescription   string          `json:"job_description,omitempty"`
	Result           json.RawMessage `json:"result"`
	Status           Status          `json:"status"`
	Reason           Reason          `json:"reason,omitempty"`
	Strategy         Strategy        `json:"strategy,omitempty"`
	ResumeTruncated  bool            `json:"resume_truncated"`
	JobDescTruncated bool            `json:"job_desc_truncated"`
	ArtifactURL      string          `json:"artifact_url,omitempty"`
	DurationMS       int64           `json:"duration_ms"`
	CreatedAt        time.Time       `json:"created_at"`
}
