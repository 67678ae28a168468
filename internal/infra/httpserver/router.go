package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/bagaspn/resumeiq/internal/application/analysis"
	domain "github.com/bagaspn/resumeiq/internal/domain/analysis"
	"github.com/bagaspn/resumeiq/internal/infra/filetext"
	mw "github.com/bagaspn/resumeiq/internal/middleware"
)

type Router struct {
	svc          *appanalysis.Service
	dailyCeiling int
	maxFileBytes int64
}

type Options struct {
	AllowedOrigins []string
	AdminAPIKey    string
	DailyCeiling   int
	MaxFileBytes   int64
	DB             *sql.DB
}

func NewRouter(svc *appanalysis.Service, opts Options) http.Handler {
	r := &Router{svc: svc, dailyCeiling: opts.DailyCeiling, maxFileBytes: opts.MaxFileBytes}
	mux := chi.NewRouter()

	mux.Use(mw.LoggingMiddleware)
	mux.Use(mw.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	checkers := map[string]mw.HealthChecker{}
	if opts.DB != nil {
		checkers["database"] = &mw.DatabaseHealthChecker{DB: opts.DB}
	}
	mux.Get("/health", mw.HealthHandler(checkers))
	mux.Get("/ready", mw.ReadinessHandler)
	mux.Get("/metrics", mw.MetricsHandler)

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Post("/resume/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))

		rt.Group(func(admin chi.Router) {
			admin.Use(mw.AdminAuth(opts.AdminAPIKey))
			admin.Get("/analyses", r.wrap(r.handleList))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks handler errors caused by the client's input.
type badRequest struct{ err error }

func (b *badRequest) Error() string { return b.err.Error() }

func badRequestf(format string, args ...any) error {
	return &badRequest{err: fmt.Errorf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br *badRequest
			if errors.As(err, &br) {
				http.Error(w, br.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /api/v1/resume/analyze
// Multipart form: "resume" (pdf/doc/docx/txt) and "job_description" (text).
// Always answers with a schema-conformant analysis result; degraded requests
// carry status=fallback and a reason instead of an error body.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(r.maxFileBytes); err != nil {
		return badRequestf("invalid multipart form: %v", err)
	}

	file, header, err := req.FormFile("resume")
	if err != nil {
		return badRequestf("resume file is required")
	}
	defer file.Close()

	if err := mw.ValidateResumeFilename(header.Filename); err != nil {
		return &badRequest{err: err}
	}
	if err := mw.ValidateFileSize(header.Size, r.maxFileBytes); err != nil {
		return &badRequest{err: err}
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	jobDesc := mw.SanitizeString(req.FormValue("job_description"))
	if err := mw.ValidateJobDescription(jobDesc); err != nil {
		return &badRequest{err: err}
	}

	resumeText, err := filetext.ExtractByFilename(header.Filename, raw)
	if err != nil {
		return badRequestf("could not extract text from %s: %v", header.Filename, err)
	}
	if err := filetext.Validate(resumeText, "resume content"); err != nil {
		return &badRequest{err: err}
	}

	res := r.svc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		ClientKey:      mw.ClientIP(req),
		ResumeFilename: header.Filename,
		ResumeText:     resumeText,
		ResumeRaw:      raw,
		ContentType:    header.Header.Get("Content-Type"),
		JobDescription: jobDesc,
	})

	mw.IncrementAnalyses()
	switch res.Status {
	case domain.StatusCompleted:
		mw.IncrementCompleted()
	case domain.StatusRepaired:
		mw.IncrementRepaired()
	case domain.StatusFallback:
		mw.IncrementFallback()
	}

	w.Header().Set("Content-Type", "application/json")

	if res.Reason == domain.ReasonRateLimited {
		mw.IncrementRateLimited()
		mw.SetRateLimitHeaders(w, r.dailyCeiling, 0, res.Verdict.RetryAfter)
		w.Header().Set("Retry-After", strconv.Itoa(int(res.Verdict.RetryAfter/time.Second)+1))
		w.WriteHeader(http.StatusTooManyRequests)
		return json.NewEncoder(w).Encode(res)
	}

	mw.SetRateLimitHeaders(w, r.dailyCeiling, res.Verdict.Remaining, 24*time.Hour)
	return json.NewEncoder(w).Encode(res)
}

// GET /api/v1/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if id == "" {
		return badRequestf("analysis id is required")
	}

	a, err := r.svc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /api/v1/analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.Paginate(req.Context(), mw.ValidatePage(page), mw.ValidatePageSize(size))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}
