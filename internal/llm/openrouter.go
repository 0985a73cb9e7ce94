package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterReferer        = "https://github.com/abhisek/mockprep"
	openRouterTitle          = "mockprep"
)

// OpenRouterProvider is an OpenAI-compatible provider pointed at OpenRouter.
// Model IDs are passed through untouched ("vendor/model").
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider builds a provider for OpenRouter. Every request
// carries the app attribution headers OpenRouter uses for its rankings.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	conf.BaseURL = cfg.BaseURL
	if conf.BaseURL == "" {
		conf.BaseURL = defaultOpenRouterBaseURL
	}
	conf.HTTPClient = &attributedClient{doer: http.DefaultClient}

	return &OpenRouterProvider{OpenAIProvider: newOpenAICompatible("openrouter", conf, cfg.Model)}, nil
}

// attributedClient stamps outgoing requests with the app's title and referer.
type attributedClient struct {
	doer openai.HTTPDoer
}

func (c *attributedClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return c.doer.Do(req)
}
