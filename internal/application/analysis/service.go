package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bagaspn/resumeiq/internal/application"
	domai "github.com/bagaspn/resumeiq/internal/domain/ai"
	domain "github.com/bagaspn/resumeiq/internal/domain/analysis"
	"github.com/bagaspn/resumeiq/internal/ratelimit"
)

// Service runs the analysis pipeline: admission, budget shaping, completion,
// payload extraction, validation, repair or fallback, then best-effort
// persistence. Safe for concurrent use; each request runs its stages
// sequentially in its own goroutine.
type Service struct {
	AI        domai.Client
	Repo      domain.Repository
	Artifacts domain.ArtifactStore
	Limiter   ratelimit.Limiter
	Clock     application.Clock
	Budget    BudgetGuard

	Temperature     float32
	MaxOutputTokens int
}

// AnalyzeCommand carries one request through the pipeline. ResumeText and
// JobDescription are plain UTF-8, already extracted from the uploaded files.
type AnalyzeCommand struct {
	ClientKey      string
	ResumeFilename string
	ResumeText     string
	ResumeRaw      []byte // original upload, archived best-effort
	ContentType    string
	JobDescription string
}

// AnalyzeResult is the envelope around the schema-conformant payload.
type AnalyzeResult struct {
	ID       domain.AnalysisID `json:"analysis_id"`
	Status   domain.Status     `json:"status"`
	Reason   domain.Reason     `json:"reason,omitempty"`
	Strategy domain.Strategy   `json:"strategy,omitempty"`
	Result   map[string]any    `json:"result"`

	Verdict    ratelimit.Verdict `json:"-"`
	DurationMS int64             `json:"duration_ms"`
}

// Analyze always produces exactly one schema-conformant result. Failures at
// any stage degrade to repair or fallback; nothing propagates to the caller.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) *AnalyzeResult {
	started := s.Clock.Now()
	id := domain.AnalysisID(uuid.New().String())

	verdict := s.Limiter.Admit(cmd.ClientKey, started)
	if !verdict.Allowed {
		log.Printf("analysis id=%s client=%s rejected: daily ceiling reached", id, cmd.ClientKey)
		res := s.fallbackResult(id, domain.ReasonRateLimited, verdict)
		// quota rejections are not persisted: no analysis was attempted
		res.DurationMS = s.Clock.Now().Sub(started).Milliseconds()
		return res
	}

	shaped, ok := s.Budget.Shape(cmd.ResumeText, cmd.JobDescription)
	if shaped.ResumeTruncated || shaped.JobDescTruncated {
		log.Printf("analysis id=%s input truncated resume=%t job_desc=%t est_tokens=%d",
			id, shaped.ResumeTruncated, shaped.JobDescTruncated, shaped.EstimatedTokens)
	}
	if !ok {
		log.Printf("analysis id=%s rejected by budget guard est_tokens=%d", id, shaped.EstimatedTokens)
		res := s.fallbackResult(id, domain.ReasonBudgetExceeded, verdict)
		return s.finish(ctx, cmd, shaped, started, res)
	}

	comp, err := s.AI.Complete(ctx, domai.CompletionRequest{
		System:      shaped.System,
		User:        shaped.User,
		MaxTokens:   s.MaxOutputTokens,
		Temperature: s.Temperature,
	})
	if err != nil {
		log.Printf("analysis id=%s completion failed: %v", id, err)
		res := s.fallbackResult(id, domain.ReasonRetriesExhausted, verdict)
		return s.finish(ctx, cmd, shaped, started, res)
	}

	payload := domain.Extract(comp.Text)
	report := domain.Validate(payload)

	var res *AnalyzeResult
	switch {
	case payload.Fields == nil:
		log.Printf("analysis id=%s payload unrecoverable len=%d", id, len(comp.Text))
		res = s.fallbackResult(id, domain.ReasonUnparseable, verdict)
	case report.Valid:
		res = &AnalyzeResult{ID: id, Status: domain.StatusCompleted, Strategy: payload.Strategy, Result: payload.Fields, Verdict: verdict}
	default:
		log.Printf("analysis id=%s schema repair missing=%v type_errors=%v warnings=%v",
			id, report.MissingFields, report.TypeErrors, report.Warnings)
		res = &AnalyzeResult{
			ID:       id,
			Status:   domain.StatusRepaired,
			Strategy: payload.Strategy,
			Result:   domain.Repair(payload.Fields, report),
			Verdict:  verdict,
		}
	}
	return s.finish(ctx, cmd, shaped, started, res)
}

// Get returns one stored analysis.
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, id)
}

// Paginate lists stored analyses, newest first.
func (s *Service) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Analysis, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}

func (s *Service) fallbackResult(id domain.AnalysisID, reason domain.Reason, verdict ratelimit.Verdict) *AnalyzeResult {
	return &AnalyzeResult{
		ID:       id,
		Status:   domain.StatusFallback,
		Reason:   reason,
		Strategy: domain.StrategyNone,
		Result:   domain.Fallback(reason),
		Verdict:  verdict,
	}
}

// finish archives the upload, stores the record, and stamps the duration.
// Persistence is best-effort: the caller already holds a valid result and a
// storage hiccup must not turn it into an error.
func (s *Service) finish(ctx context.Context, cmd AnalyzeCommand, shaped ShapedRequest, started time.Time, res *AnalyzeResult) *AnalyzeResult {
	res.DurationMS = s.Clock.Now().Sub(started).Milliseconds()

	artifactURL := ""
	if s.Artifacts != nil && len(cmd.ResumeRaw) > 0 {
		key := fmt.Sprintf("%s/%s", res.ID, cmd.ResumeFilename)
		url, err := s.Artifacts.UploadBytes(ctx, key, cmd.ResumeRaw, cmd.ContentType)
		if err != nil {
			log.Printf("analysis id=%s artifact upload failed: %v", res.ID, err)
		} else {
			artifactURL = url
		}
	}

	if s.Repo != nil {
		raw, err := json.Marshal(res.Result)
		if err != nil {
			log.Printf("analysis id=%s result marshal failed: %v", res.ID, err)
			raw = []byte("{}")
		}
		rec := &domain.Analysis{
			ID:               res.ID,
			ClientKey:        cmd.ClientKey,
			ResumeFilename:   cmd.ResumeFilename,
			JobDescription:   cmd.JobDescription,
			Result:           raw,
			Status:           res.Status,
			Reason:           res.Reason,
			Strategy:         res.Strategy,
			ResumeTruncated:  shaped.ResumeTruncated,
			JobDescTruncated: shaped.JobDescTruncated,
			ArtifactURL:      artifactURL,
			DurationMS:       res.DurationMS,
			CreatedAt:        started,
		}
		if err := s.Repo.Save(ctx, rec); err != nil {
			log.Printf("analysis id=%s save failed: %v", res.ID, err)
		}
	}
	return res
}
