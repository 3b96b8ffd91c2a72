package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Port:                "8080",
		AIEndpoint:          "https://example.openai.azure.com",
		APIKey:              "key",
		AuthMode:            AuthModeAPIKey,
		EmbeddingDeployment: "text-embedding-ada-002",
		ChatDeployment:      "gpt-4o",
		GenerationProvider:  ProviderOpenAI,
		WeaviateHost:        "http://localhost:8081",
		IndexName:           "GatewayManualChunk",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateReportsAllMissingTogether(t *testing.T) {
	cfg := validConfig()
	cfg.AIEndpoint = ""
	cfg.EmbeddingDeployment = ""
	cfg.APIKey = ""
	cfg.WeaviateHost = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Missing) != 4 {
		t.Errorf("expected 4 missing settings, got %d: %v", len(verr.Missing), verr.Missing)
	}
	for _, want := range []string{
		"AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_EMBEDDING_DEPLOYMENT",
		"AZURE_OPENAI_API_KEY",
		"WEAVIATE_HOST",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error message missing %s:\n%s", want, err)
		}
	}
}

func TestValidateAuthModes(t *testing.T) {
	cfg := validConfig()
	cfg.AuthMode = AuthModeBearerToken
	cfg.APIKey = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "AZURE_OPENAI_AD_TOKEN") {
		t.Errorf("bearer-token mode without token should fail, got %v", err)
	}
	cfg.ADToken = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("bearer-token mode with token rejected: %v", err)
	}

	cfg.AuthMode = "managed-identity"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "OPENAI_AUTH_MODE") {
		t.Errorf("unknown auth mode should fail, got %v", err)
	}
}

func TestValidateGenerationProviders(t *testing.T) {
	cfg := validConfig()
	cfg.GenerationProvider = ProviderGemini
	cfg.ChatDeployment = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEYS") {
		t.Errorf("gemini without keys should fail, got %v", err)
	}
	cfg.GeminiAPIKeys = []string{"k1"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("gemini with keys rejected: %v", err)
	}

	cfg.GenerationProvider = "anthropic"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "GENERATION_PROVIDER") {
		t.Errorf("unknown provider should fail, got %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 {
		t.Errorf("chunking defaults = %d/%d, want 1000/200", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.EmbeddingDimensions != 1536 {
		t.Errorf("EmbeddingDimensions = %d, want 1536", cfg.EmbeddingDimensions)
	}
	if cfg.IndexName != "GatewayManualChunk" {
		t.Errorf("IndexName = %q", cfg.IndexName)
	}
	if cfg.AuthMode != AuthModeAPIKey {
		t.Errorf("AuthMode = %q, want %q", cfg.AuthMode, AuthModeAPIKey)
	}
	if cfg.GenerationProvider != ProviderOpenAI {
		t.Errorf("GenerationProvider = %q, want %q", cfg.GenerationProvider, ProviderOpenAI)
	}
}

func TestLoadConfigGeminiKeyList(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", " key-a, key-b ,,key-c ")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.GeminiAPIKeys) != len(want) {
		t.Fatalf("GeminiAPIKeys = %v, want %v", cfg.GeminiAPIKeys, want)
	}
	for i := range want {
		if cfg.GeminiAPIKeys[i] != want[i] {
			t.Errorf("GeminiAPIKeys[%d] = %q, want %q", i, cfg.GeminiAPIKeys[i], want[i])
		}
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHUNK_SIZE", "512")
	t.Setenv("WEAVIATE_HOST", "https://weaviate.internal:443")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.ChunkSize != 512 {
		t.Errorf("ChunkSize = %d, want 512", cfg.ChunkSize)
	}
	if cfg.WeaviateHost != "https://weaviate.internal:443" {
		t.Errorf("WeaviateHost = %q", cfg.WeaviateHost)
	}
}
