package mysql

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

// Save inserts an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO resume_analyses
  (id, client_key, resume_filename, job_description, result_json, status, reason, strategy,
   resume_truncated, job_desc_truncated, artifact_url, duration_ms, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  result_json=VALUES(result_json), status=VALUES(status), reason=VALUES(reason),
  strategy=VALUES(strategy), artifact_url=VALUES(artifact_url), duration_ms=VALUES(duration_ms);
`
	client := stringOrDash(a.ClientKey)
	result := string(a.Result)
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
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
WHERE id=?;
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
LIMIT ? OFFSET ?;
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
