package analysis

import "context"

// Repository port for persisting and querying analyses
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Paginate(ctx context.Context, page, pageSize int) ([]*Analysis, error)
}

// ArtifactStore keeps the original uploaded document bytes, keyed by analysis.
type ArtifactStore interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
