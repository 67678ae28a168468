package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config parses", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
  adminApiKey: op-key
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: resumeiq
  password: pw
  name: resumeiq
ai:
  baseUrl: https://api.groq.com/openai/v1
  apiKey: sk-test
  model: llama3-70b-8192
  temperature: 0.2
limits:
  requestsPerDay: 15
  maxResumeChars: 8000
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AI.BaseURL)
		assert.Equal(t, 15, cfg.Limits.RequestsPerDay)
	})

	t.Run("defaults fill an almost empty config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  port: 0\n"))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, "llama3-70b-8192", cfg.AI.Model)
		assert.Equal(t, float32(0.2), cfg.AI.Temperature)
		assert.Equal(t, 3, cfg.AI.MaxRetries)
		assert.Equal(t, 15, cfg.Limits.RequestsPerDay)
		assert.Equal(t, 8000, cfg.Limits.MaxResumeChars)
		assert.Equal(t, 4000, cfg.Limits.MaxJobDescChars)
		assert.Equal(t, 4, cfg.Limits.CharsPerToken)
		assert.Equal(t, int64(10<<20), cfg.Limits.MaxFileBytes)
	})

	t.Run("env overrides win for secrets", func(t *testing.T) {
		t.Setenv("AI_API_KEY", "sk-from-env")
		t.Setenv("ADMIN_API_KEY", "admin-from-env")

		cfg, err := Load(writeConfig(t, "ai:\n  apiKey: sk-from-file\n"))
		require.NoError(t, err)
		assert.Equal(t, "sk-from-env", cfg.AI.APIKey)
		assert.Equal(t, "admin-from-env", cfg.Server.AdminAPIKey)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [broken"))
		assert.Error(t, err)
	})
}

func TestDSNBuilders(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 3306
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "resumeiq"

	assert.Equal(t,
		"app:pw@tcp(db.internal:3306)/resumeiq?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())

	cfg.Database.Port = 5432
	assert.Equal(t,
		"host=db.internal port=5432 user=app password=pw dbname=resumeiq sslmode=disable",
		cfg.PostgresDSN())
}
