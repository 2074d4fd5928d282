package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements STT using OpenAI's audio transcription API.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	language string
	logger   logger.Logger
}

// NewOpenAIProvider creates a new OpenAI Whisper STT provider.
// baseURL is optional and points the client at a compatible server.
func NewOpenAIProvider(cfg config.TranscriberConfig, apiKey, baseURL string, log logger.Logger) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	model := cfg.OpenAIModel
	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAIProvider{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		language: normalizeLanguage(cfg.Language),
		logger:   log,
	}, nil
}

// Transcribe uploads the audio file and returns the transcription text.
func (o *OpenAIProvider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	o.logger.Info(ctx, "Transcribing with OpenAI %s: %s", o.model, audioPath)

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: audioPath,
		Language: o.language,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	o.logger.Info(ctx, "Transcription completed: %d characters", len(resp.Text))
	return resp.Text, nil
}

func (o *OpenAIProvider) Name() string {
	return config.ProviderOpenAI
}

func (o *OpenAIProvider) Close() error {
	return nil
}
