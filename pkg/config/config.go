package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Generation GenerationConfig
	Embedding  EmbeddingConfig
	Retrieval  RetrievalConfig
	Knowledge  KnowledgeConfig
	Persona    PersonaConfig
	Suggest    SuggestConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GenerationConfig selects the generative model. Provider is "gigachat" or
// "openai" (any OpenAI-compatible endpoint).
type GenerationConfig struct {
	Provider           string
	APIKey             string
	BaseURL            string
	Model              string
	Scope              string
	Temperature        float64
	InsecureSkipVerify bool
}

// EmbeddingConfig selects the embedding model. Provider "none" disables
// semantic scoring for the lifetime of the process.
type EmbeddingConfig struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	BatchSize int
	Timeout   time.Duration
}

type RetrievalConfig struct {
	StrongThreshold float64
	WeakThreshold   float64
	LexicalWeight   float64
	SemanticWeight  float64
	LexicalScale    float64
	ContextLimit    int
	ContextMaxChars int
	SampleSize      int
	CategoryBonus   float64
	RepeatThreshold float64
}

type KnowledgeConfig struct {
	// Source is "file" or "postgres".
	Source   string
	FilePath string
}

type PersonaConfig struct {
	Name          string
	Pronoun       string
	AssistantName string
	FilePath      string
}

type SuggestConfig struct {
	Limit     int
	RecentTTL time.Duration
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work on their own.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getInt("SERVER_WRITE_TIMEOUT", 60)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			AllowOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "career_qa"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Generation: GenerationConfig{
			Provider:           strings.ToLower(getEnv("GENERATION_PROVIDER", "gigachat")),
			APIKey:             getEnv("GENERATION_API_KEY", ""),
			BaseURL:            getEnv("GENERATION_BASE_URL", ""),
			Model:              getEnv("GENERATION_MODEL", "GigaChat"),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Temperature:        getFloat("GENERATION_TEMPERATURE", 0.4),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
		},
		Embedding: EmbeddingConfig{
			Provider:  strings.ToLower(getEnv("EMBEDDING_PROVIDER", "openai")),
			APIKey:    getEnv("EMBEDDING_API_KEY", ""),
			BaseURL:   getEnv("EMBEDDING_BASE_URL", ""),
			Model:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			BatchSize: getInt("EMBEDDING_BATCH_SIZE", 64),
			Timeout:   time.Duration(getInt("EMBEDDING_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Retrieval: RetrievalConfig{
			StrongThreshold: getFloat("RETRIEVAL_STRONG_THRESHOLD", 0.9),
			WeakThreshold:   getFloat("RETRIEVAL_WEAK_THRESHOLD", 0.3),
			LexicalWeight:   getFloat("RETRIEVAL_LEXICAL_WEIGHT", 0.35),
			SemanticWeight:  getFloat("RETRIEVAL_SEMANTIC_WEIGHT", 0.65),
			LexicalScale:    getFloat("RETRIEVAL_LEXICAL_SCALE", 0.075),
			ContextLimit:    getInt("RETRIEVAL_CONTEXT_LIMIT", 6),
			ContextMaxChars: getInt("RETRIEVAL_CONTEXT_MAX_CHARS", 6000),
			SampleSize:      getInt("RETRIEVAL_SAMPLE_SIZE", 8),
			CategoryBonus:   getFloat("RETRIEVAL_CATEGORY_BONUS", 0.05),
			RepeatThreshold: getFloat("REPEAT_THRESHOLD", 0.8),
		},
		Knowledge: KnowledgeConfig{
			Source:   strings.ToLower(getEnv("KNOWLEDGE_SOURCE", "file")),
			FilePath: getEnv("KNOWLEDGE_FILE", "data/knowledge.yaml"),
		},
		Persona: PersonaConfig{
			Name:          getEnv("SUBJECT_NAME", ""),
			Pronoun:       getEnv("SUBJECT_PRONOUN", "he"),
			AssistantName: getEnv("ASSISTANT_NAME", "Echo"),
			FilePath:      getEnv("PERSONA_FILE", ""),
		},
		Suggest: SuggestConfig{
			Limit:     getInt("SUGGEST_LIMIT", 5),
			RecentTTL: time.Duration(getInt("SUGGEST_RECENT_TTL_MINUTES", 10)) * time.Minute,
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

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}
