package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bagaspn/resumeiq/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO resume_analyses
  (id, client_key, resume_filename, job_description, result_json, status, reason, strategy,
   resume_truncated, job_desc_truncated, artifact_url, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
  result_json=EXCLUDED.result_json,
  status=EXCLUDED.status,
  reason=EXCLUDED.reason,
  strategy=EXCLUDED.strategy,
  artifact_url=EXCLUDED.artifact_url,
  duration_ms=EXCLUDED.duration_ms;
`
	client := a.ClientKey
	if strings.TrimSpace(client) == "" {
		client = "-"
	}
	result := string(a.Result)
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, client, a.ResumeFilename, a.JobDescription, result,
		a.Status, a.Reason, a.Strategy,
		a.ResumeTruncated, a.JobDescTruncated, a.ArtifactURL, a.DurationMS, createdAt)
	return err
}

// Get returns one analysis by id
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, client_key, resume_filename, job_description, result_json, status, reason, strategy,
       resume_truncated, job_desc_truncated, artifact_url, duration_ms, created_at
FROM resume_analyses
WHERE id=$1;
`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// Paginate returns a page of analyses ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, client_key, resume_filename, job_description, result_json, status, reason, strategy,
       resume_truncated, job_desc_truncated, artifact_url, duration_ms, created_at
FROM resume_analyses
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var result []byte
	var created time.Time
	if err := row.Scan(
		&a.ID, &a.ClientKey, &a.ResumeFilename, &a.JobDescription, &result,
		&a.Status, &a.Reason, &a.Strategy,
		&a.ResumeTruncated, &a.JobDescTruncated, &a.ArtifactURL, &a.DurationMS, &created,
	); err != nil {
		return nil, err
	}
	a.Result = result
	a.CreatedAt = created
	return &a, nil
}
