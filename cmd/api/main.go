package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bagaspn/resumeiq/internal/application"
	appanalysis "github.com/bagaspn/resumeiq/internal/application/analysis"
	"github.com/bagaspn/resumeiq/internal/config"
	domain "github.com/bagaspn/resumeiq/internal/domain/analysis"
	openaiClient "github.com/bagaspn/resumeiq/internal/infra/ai/openai"
	mysqlp "github.com/bagaspn/resumeiq/internal/infra/db/mysql"
	postgresp "github.com/bagaspn/resumeiq/internal/infra/db/postgres"
	"github.com/bagaspn/resumeiq/internal/infra/httpserver"
	minioStore "github.com/bagaspn/resumeiq/internal/infra/storage"
	"github.com/bagaspn/resumeiq/internal/ratelimit"
)

func main() {
	// .env opsional, buat development lokal
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database sesuai driver
	var db *sql.DB
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init AI client
	ai := openaiClient.NewClient(openaiClient.Options{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		MaxRetries:  cfg.AI.MaxRetries,
		BackoffBase: cfg.BackoffBase(),
	})

	// init service
	svc := &appanalysis.Service{
		AI:        ai,
		Repo:      repo,
		Artifacts: store,
		Limiter:   ratelimit.NewMemory(cfg.Limits.RequestsPerDay, 24*time.Hour),
		Clock:     application.SystemClock{},
		Budget: appanalysis.BudgetGuard{
			MaxResumeChars:  cfg.Limits.MaxResumeChars,
			MaxJobDescChars: cfg.Limits.MaxJobDescChars,
			CharsPerToken:   cfg.Limits.CharsPerToken,
			MaxPromptTokens: cfg.Limits.MaxPromptTokens,
		},
		Temperature:     cfg.AI.Temperature,
		MaxOutputTokens: cfg.AI.MaxOutputTokens,
	}

	// init router
	handler := httpserver.NewRouter(svc, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminAPIKey:    cfg.Server.AdminAPIKey,
		DailyCeiling:   cfg.Limits.RequestsPerDay,
		MaxFileBytes:   cfg.Limits.MaxFileBytes,
		DB:             db,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // pipeline retries can take a while
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
