package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries every environment-sourced setting the pipeline needs. All
// values come from the process environment (optionally seeded by a .env file).
type Config struct {
	Port      string
	UploadDir string

	// Azure OpenAI / OpenAI-compatible endpoint
	AIEndpoint          string
	APIVersion          string
	APIKey              string
	ADToken             string
	AuthMode            string // "api-key" or "bearer-token"
	EmbeddingDeployment string
	ChatDeployment      string
	EmbeddingDimensions int

	// Alternative generation provider
	GenerationProvider string // "openai" or "gemini"
	GeminiAPIKeys      []string
	GeminiModel        string

	// Weaviate
	WeaviateHost   string
	WeaviateAPIKey string
	IndexName      string

	// Chunking and retrieval
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

const (
	AuthModeAPIKey      = "api-key"
	AuthModeBearerToken = "bearer-token"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ValidationError reports every missing required setting at once so an
// operator can fix the environment in a single pass.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration:\n  - %s", strings.Join(e.Missing, "\n  - "))
}

// LoadConfig reads settings from the environment. It does not validate; call
// Validate before constructing any service client.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-02-01")
	v.SetDefault("OPENAI_AUTH_MODE", AuthModeAPIKey)
	v.SetDefault("GENERATION_PROVIDER", ProviderOpenAI)
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("EMBEDDING_DIMENSIONS", 1536)
	v.SetDefault("AZURE_SEARCH_INDEX_NAME", "GatewayManualChunk")
	v.SetDefault("CHUNK_SIZE", 1000)
	v.SetDefault("CHUNK_OVERLAP", 200)
	v.SetDefault("TOP_K_RESULTS", 5)

	for _, key := range []string{
		"AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_API_KEY",
		"AZURE_OPENAI_AD_TOKEN",
		"AZURE_OPENAI_EMBEDDING_DEPLOYMENT",
		"AZURE_OPENAI_CHAT_DEPLOYMENT",
		"GEMINI_API_KEYS",
		"WEAVIATE_HOST",
		"WEAVIATE_APIKEY",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	cfg := &Config{
		Port:                v.GetString("PORT"),
		UploadDir:           v.GetString("UPLOAD_DIR"),
		AIEndpoint:          v.GetString("AZURE_OPENAI_ENDPOINT"),
		APIVersion:          v.GetString("AZURE_OPENAI_API_VERSION"),
		APIKey:              v.GetString("AZURE_OPENAI_API_KEY"),
		ADToken:             v.GetString("AZURE_OPENAI_AD_TOKEN"),
		AuthMode:            v.GetString("OPENAI_AUTH_MODE"),
		EmbeddingDeployment: v.GetString("AZURE_OPENAI_EMBEDDING_DEPLOYMENT"),
		ChatDeployment:      v.GetString("AZURE_OPENAI_CHAT_DEPLOYMENT"),
		EmbeddingDimensions: v.GetInt("EMBEDDING_DIMENSIONS"),
		GenerationProvider:  v.GetString("GENERATION_PROVIDER"),
		GeminiModel:         v.GetString("GEMINI_MODEL"),
		WeaviateHost:        v.GetString("WEAVIATE_HOST"),
		WeaviateAPIKey:      v.GetString("WEAVIATE_APIKEY"),
		IndexName:           v.GetString("AZURE_SEARCH_INDEX_NAME"),
		ChunkSize:           v.GetInt("CHUNK_SIZE"),
		ChunkOverlap:        v.GetInt("CHUNK_OVERLAP"),
		TopK:                v.GetInt("TOP_K_RESULTS"),
	}
	if keys := v.GetString("GEMINI_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.GeminiAPIKeys = append(cfg.GeminiAPIKeys, k)
			}
		}
	}
	return cfg, nil
}

// Validate checks the loaded configuration and reports every missing required
// setting together rather than failing on the first one.
func (c *Config) Validate() error {
	var missing []string

	if c.AIEndpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT: OpenAI-compatible endpoint URL")
	}
	if c.EmbeddingDeployment == "" {
		missing = append(missing, "AZURE_OPENAI_EMBEDDING_DEPLOYMENT: embedding model deployment name")
	}
	switch c.AuthMode {
	case AuthModeAPIKey:
		if c.APIKey == "" {
			missing = append(missing, "AZURE_OPENAI_API_KEY: API key (required with OPENAI_AUTH_MODE=api-key)")
		}
	case AuthModeBearerToken:
		if c.ADToken == "" {
			missing = append(missing, "AZURE_OPENAI_AD_TOKEN: bearer token (required with OPENAI_AUTH_MODE=bearer-token)")
		}
	default:
		missing = append(missing, fmt.Sprintf("OPENAI_AUTH_MODE: unknown mode %q, want %q or %q", c.AuthMode, AuthModeAPIKey, AuthModeBearerToken))
	}
	switch c.GenerationProvider {
	case ProviderOpenAI:
		if c.ChatDeployment == "" {
			missing = append(missing, "AZURE_OPENAI_CHAT_DEPLOYMENT: chat model deployment name")
		}
	case ProviderGemini:
		if len(c.GeminiAPIKeys) == 0 {
			missing = append(missing, "GEMINI_API_KEYS: comma-separated Gemini API keys (required with GENERATION_PROVIDER=gemini)")
		}
	default:
		missing = append(missing, fmt.Sprintf("GENERATION_PROVIDER: unknown provider %q, want %q or %q", c.GenerationProvider, ProviderOpenAI, ProviderGemini))
	}
	if c.WeaviateHost == "" {
		missing = append(missing, "WEAVIATE_HOST: Weaviate endpoint URL")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
