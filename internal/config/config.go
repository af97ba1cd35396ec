package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Rag      RagConfig
	Trace    TraceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	AuthUsername       string
	AuthPasswordHash   string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "gemini"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	GeminiApiKey      string
	LLMProvider       string // "ollama"
	LLMModel          string // e.g. "phi4", "llama3"
	PromptFormat      string // "phi4" or "chatml" turn markup
	Language          string // "de" or "en", selects the affirmative token
}

// RagConfig carries the retrieval and prompt-budget settings recognized
// by the pipeline.
type RagConfig struct {
	TopK                  int
	ReturnFullTextContent bool
	MaxContextLength      int
	MaxSystemPromptLength int
	MaxChatHistoryLength  int
}

type TraceConfig struct {
	Enabled bool
	Sink    string // "nats", "db" or "log"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "11891"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:11891"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			AuthUsername:       getEnv("AUTH_USERNAME", "admin"),
			AuthPasswordHash:   getEnv("AUTH_PASSWORD_HASH", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiApiKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "phi4"),
			PromptFormat:      getEnv("PROMPT_FORMAT", "phi4"),
			Language:          getEnv("RESPONSE_LANGUAGE", "de"),
		},
		Rag: RagConfig{
			TopK:                  getEnvAsInt("RAG_TOP_K", 1),
			ReturnFullTextContent: getEnvAsBool("RAG_RETURN_FULL_TEXT_CONTENT", true),
			MaxContextLength:      getEnvAsInt("RAG_MAX_CONTEXT_LENGTH", 4096),
			MaxSystemPromptLength: getEnvAsInt("RAG_MAX_SYSTEM_PROMPT_LENGTH", 1024),
			MaxChatHistoryLength:  getEnvAsInt("RAG_MAX_CHAT_HISTORY_LENGTH", 2048),
		},
		Trace: TraceConfig{
			Enabled: getEnvAsBool("TRACE_ENABLED", false),
			Sink:    getEnv("TRACE_SINK", "log"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
