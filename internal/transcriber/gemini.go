package transcriber

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/gemini"
	"google.golang.org/genai"
)

// Gemini rejects requests with more than 20MB of inline data
const maxInlineAudioBytes = 20 << 20

const transcribePrompt = `Transcribe the speech in this audio verbatim.
Return only the transcript text, without timestamps, speaker labels or commentary.`

// generator is the part of gemini.Client used here
type generator interface {
	Generate(ctx context.Context, model string, contents []*genai.Content) (string, error)
}

// GeminiProvider sends the audio inline to a Gemini model.
type GeminiProvider struct {
	client generator
	model  string
	logger logger.Logger
}

// NewGeminiProvider creates a provider backed by the shared Gemini client
func NewGeminiProvider(cfg config.TranscriberConfig, client *gemini.Client, log logger.Logger) *GeminiProvider {
	return &GeminiProvider{
		client: client,
		model:  cfg.GeminiModel,
		logger: log,
	}
}

// Transcribe reads the whole file into one request.
func (g *GeminiProvider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	if len(data) > maxInlineAudioBytes {
		return "", fmt.Errorf("audio is %s, Gemini accepts at most %s inline",
			humanize.Bytes(uint64(len(data))), humanize.Bytes(maxInlineAudioBytes))
	}

	mime := mimetype.Detect(data).String()
	g.logger.Info(ctx, "Transcribing with Gemini %s: %s (%s, %s)", g.model, audioPath, mime, humanize.Bytes(uint64(len(data))))

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: transcribePrompt},
			{InlineData: &genai.Blob{MIMEType: mime, Data: data}},
		},
	}}

	text, err := g.client.Generate(ctx, g.model, contents)
	if err != nil {
		return "", fmt.Errorf("gemini transcription: %w", err)
	}

	g.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

func (g *GeminiProvider) Name() string {
	return config.ProviderGemini
}

func (g *GeminiProvider) Close() error {
	return nil
}
