package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	OpenAI    OpenAIConfig
	Retrieval RetrievalConfig
	Extractor ExtractorConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

type RetrievalConfig struct {
	Dimensions int
	TopK       int
	CacheTTL   time.Duration
}

type ExtractorConfig struct {
	// LexiconPath optionally overrides the compiled-in lexicon with a YAML file.
	LexiconPath string
	// MergeThreshold is the minimum confidence a new risk-tolerance or
	// betting-style detection needs to replace a stored profile value.
	MergeThreshold float64
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables are used directly

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	llmTimeout, _ := strconv.Atoi(getEnv("OPENAI_TIMEOUT_SECONDS", "15"))
	dimensions, _ := strconv.Atoi(getEnv("RETRIEVAL_DIMENSIONS", "1536"))
	topK, _ := strconv.Atoi(getEnv("RETRIEVAL_TOP_K", "5"))
	cacheTTL, _ := strconv.Atoi(getEnv("RETRIEVAL_CACHE_TTL_MINUTES", "60"))
	mergeThreshold, _ := strconv.ParseFloat(getEnv("EXTRACTOR_MERGE_THRESHOLD", "0.6"), 64)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5433"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "pitchside"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			Timeout:        time.Duration(llmTimeout) * time.Second,
		},
		Retrieval: RetrievalConfig{
			Dimensions: dimensions,
			TopK:       topK,
			CacheTTL:   time.Duration(cacheTTL) * time.Minute,
		},
		Extractor: ExtractorConfig{
			LexiconPath:    getEnv("EXTRACTOR_LEXICON_PATH", ""),
			MergeThreshold: mergeThreshold,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
