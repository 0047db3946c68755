package narrative

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tavernkeep/gm-engine/internal/errors"
)

const (
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 30 * time.Second
)

// GeminiConfig holds the configuration for the Gemini narrator.
type GeminiConfig struct {
	APIKey  string
	Model   string        // defaults to defaultModel
	Timeout time.Duration // per-request deadline, defaults to defaultTimeout
}

// Validate ensures required configuration is provided.
func (c *GeminiConfig) Validate() error {
	if c.APIKey == "" {
		return errors.InvalidArgument("Gemini API key is required")
	}
	return nil
}

// GeminiClient narrates through the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiClient creates a narrator backed by the Gemini API.
func NewGeminiClient(ctx context.Context, cfg *GeminiConfig) (*GeminiClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create Gemini client")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &GeminiClient{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
	}, nil
}

var _ Client = (*GeminiClient)(nil)

// Generate produces narration for one request. Failures come back coded
// Unavailable so the orchestrator can fall back to templated narration.
func (c *GeminiClient) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(input)))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "narrator request failed")
	}

	text := extractText(resp)
	if text == "" {
		return nil, errors.Unavailable("narrator returned an empty response")
	}

	return &GenerateOutput{Text: text}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	return strings.TrimSpace(b.String())
}
