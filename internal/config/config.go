package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
		AdminAPIKey    string   `yaml:"adminApiKey"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		BaseURL         string  `yaml:"baseUrl"` // OpenAI-compatible endpoint (Groq in prod)
		APIKey          string  `yaml:"apiKey"`
		Model           string  `yaml:"model"`
		Temperature     float32 `yaml:"temperature"`
		MaxOutputTokens int     `yaml:"maxOutputTokens"`
		MaxRetries      int     `yaml:"maxRetries"`
		BackoffBaseMS   int     `yaml:"backoffBaseMs"`
	} `yaml:"ai"`

	Limits struct {
		RequestsPerDay  int   `yaml:"requestsPerDay"`
		MaxResumeChars  int   `yaml:"maxResumeChars"`
		MaxJobDescChars int   `yaml:"maxJobDescChars"`
		CharsPerToken   int   `yaml:"charsPerToken"` // heuristic divisor, not a tokenizer contract
		MaxPromptTokens int   `yaml:"maxPromptTokens"`
		MaxFileBytes    int64 `yaml:"maxFileBytes"`
	} `yaml:"limits"`
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	// secrets boleh dioverride lewat env
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("ADMIN_API_KEY"); v != "" {
		cfg.Server.AdminAPIKey = v
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.AI.Model == "" {
		c.AI.Model = "llama3-70b-8192"
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.2
	}
	if c.AI.MaxOutputTokens == 0 {
		c.AI.MaxOutputTokens = 8000
	}
	if c.AI.MaxRetries == 0 {
		c.AI.MaxRetries = 3
	}
	if c.AI.BackoffBaseMS == 0 {
		c.AI.BackoffBaseMS = 1000
	}
	if c.Limits.RequestsPerDay == 0 {
		c.Limits.RequestsPerDay = 15
	}
	if c.Limits.MaxResumeChars == 0 {
		c.Limits.MaxResumeChars = 8000
	}
	if c.Limits.MaxJobDescChars == 0 {
		c.Limits.MaxJobDescChars = 4000
	}
	if c.Limits.CharsPerToken == 0 {
		c.Limits.CharsPerToken = 4
	}
	if c.Limits.MaxPromptTokens == 0 {
		c.Limits.MaxPromptTokens = 6000
	}
	if c.Limits.MaxFileBytes == 0 {
		c.Limits.MaxFileBytes = 10 << 20 // 10MB
	}
}

// BackoffBase delay dasar antar retry
func (c *Config) BackoffBase() time.Duration {
	return time.Duration(c.AI.BackoffBaseMS) * time.Millisecond
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN untuk driver lib/pq
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
