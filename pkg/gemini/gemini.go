package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"google.golang.org/genai"
)

// ErrNoAPIKeys is returned by New when no key is configured
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// Client calls Gemini, rotating through API keys on 429 / quota errors
type Client struct {
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	generate   generateFunc
}

type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)

// New creates a Client for the given keys
func New(apiKeys []string, log logger.Logger) (*Client, error) {
	keys := make([]string, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, ErrNoAPIKeys
	}

	return &Client{
		apiKeys:  keys,
		logger:   log,
		generate: generateContent,
	}, nil
}

// SplitKeys parses a comma separated key list such as GEMINI_API_KEY
func SplitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Generate sends contents to model and returns the concatenated text of the first candidate
func (c *Client) Generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		result, err := c.generate(ctx, c.apiKeys[c.currentKey], model, contents)
		if err != nil {
			if isRateLimited(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", c.currentKey+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part != nil && part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *Client) rotateKey() {
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, apiKey, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client.Models.GenerateContent(ctx, model, contents, nil)
}
