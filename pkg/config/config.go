package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Webhook    WebhookConfig
	Assembly   AssemblyAIConfig
	Groq       GroqConfig
	Email      EmailConfig
	Enrichment EnrichmentConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration (vector search index)
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint          string
	AccessKeyID       string
	SecretAccessKey   string
	RecordingsBucket  string
	TranscriptsBucket string
	EnrichedBucket    string
	UseSSL            bool
	URLExpiry         time.Duration
}

// WebhookConfig holds inbound webhook verification configuration
type WebhookConfig struct {
	// SharedSecret signs the provider's URL-validation handshake.
	// Mandatory at startup: a missing secret is a configuration error,
	// not something to discover on the first handshake.
	SharedSecret string
}

// AssemblyAIConfig holds transcription configuration
type AssemblyAIConfig struct {
	APIKey string
}

// GroqConfig holds LLM configuration (summaries, classification, embeddings)
type GroqConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
}

// EmailConfig holds transactional email configuration
type EmailConfig struct {
	APIKey    string
	BaseURL   string
	FromName  string
	FromEmail string
}

// EnrichmentConfig holds phase-2 configuration
type EnrichmentConfig struct {
	SearchIndexName    string
	EmbeddingDimension int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_brain"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:          getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:       getEnv("STORAGE_ACCESS_KEY", ""),
			SecretAccessKey:   getEnv("STORAGE_SECRET_KEY", ""),
			RecordingsBucket:  getEnv("STORAGE_RECORDINGS_BUCKET", "meeting-recordings"),
			TranscriptsBucket: getEnv("STORAGE_TRANSCRIPTS_BUCKET", "raw-transcripts"),
			EnrichedBucket:    getEnv("STORAGE_ENRICHED_BUCKET", "enriched-output"),
			UseSSL:            getEnvAsBool("STORAGE_USE_SSL", false),
			URLExpiry:         getEnvAsDuration("STORAGE_URL_EXPIRY", "24h"),
		},
		Webhook: WebhookConfig{
			SharedSecret: getEnv("WEBHOOK_SHARED_SECRET", ""),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Groq: GroqConfig{
			APIKey:         getEnv("GROQ_API_KEY", ""),
			BaseURL:        getEnv("GROQ_API_URL", "https://api.groq.com"),
			ChatModel:      getEnv("GROQ_CHAT_MODEL", "llama-3.1-70b-versatile"),
			EmbeddingModel: getEnv("GROQ_EMBEDDING_MODEL", "text-embedding-ada-002"),
		},
		Email: EmailConfig{
			APIKey:    getEnv("BREVO_API_KEY", ""),
			BaseURL:   getEnv("BREVO_API_URL", "https://api.brevo.com"),
			FromName:  getEnv("FROM_NAME", "Universal Meeting Assistant"),
			FromEmail: getEnv("FROM_EMAIL", "no-reply@ecstasyholdings.com"),
		},
		Enrichment: EnrichmentConfig{
			SearchIndexName:    getEnv("SEARCH_INDEX_NAME", "meeting-brain-index"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 1536),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration.
// Missing secrets here are fatal at process start, never discovered at request time.
func (c *Config) Validate() error {
	if c.Webhook.SharedSecret == "" {
		return fmt.Errorf("WEBHOOK_SHARED_SECRET is required")
	}
	if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
		return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
