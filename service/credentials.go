package service

import (
	"strings"

	"github.com/dbarkol/telco-ai-solution-labs/config"
	openai "github.com/sashabaranov/go-openai"
)

// NewAIClientConfig builds the OpenAI client configuration for the configured
// endpoint and credential mode. Keeping the auth strategy here means the
// embedding and generation constructors never branch on it themselves.
//
// Two modes are supported:
//   - api-key: static key, sent as api-key header on Azure endpoints and as a
//     bearer token everywhere else
//   - bearer-token: a pre-acquired AAD token (managed identity, az cli), sent
//     as Authorization: Bearer
func NewAIClientConfig(cfg *config.Config) openai.ClientConfig {
	azure := isAzureEndpoint(cfg.AIEndpoint)

	switch cfg.AuthMode {
	case config.AuthModeBearerToken:
		c := openai.DefaultConfig(cfg.ADToken)
		c.BaseURL = cfg.AIEndpoint
		if azure {
			c.APIType = openai.APITypeAzureAD
			c.APIVersion = cfg.APIVersion
		}
		return c
	default:
		if azure {
			c := openai.DefaultAzureConfig(cfg.APIKey, cfg.AIEndpoint)
			c.APIVersion = cfg.APIVersion
			return c
		}
		c := openai.DefaultConfig(cfg.APIKey)
		c.BaseURL = cfg.AIEndpoint
		return c
	}
}

func isAzureEndpoint(endpoint string) bool {
	return strings.Contains(endpoint, ".openai.azure.com")
}
