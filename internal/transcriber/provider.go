// Package transcriber turns an audio file into text with a speech-to-text model.
package transcriber

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
)

// Provider is the interface for STT implementations.
type Provider interface {
	// Transcribe converts a whole audio file to text in one blocking call.
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// Name returns the provider name (e.g., "whispercpp", "openai")
	Name() string

	// Close releases any resources held by the provider.
	Close() error
}

// Run transcribes audioPath with p. Every failure, including an empty
// result, comes back as a transcribe stage error. There is no retry.
// Surrounding whitespace is trimmed; the raw and trimmed lengths are logged.
func Run(ctx context.Context, p Provider, audioPath string, log logger.Logger) (string, error) {
	raw, err := p.Transcribe(ctx, audioPath)
	if err != nil {
		return "", stage.Fail(stage.Transcribe, stage.ErrTranscribeFailed, err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		log.Warn(ctx, "%s returned no text for %s (%d raw characters)", p.Name(), audioPath, len(raw))
		return "", stage.Fail(stage.Transcribe, stage.ErrTranscribeFailed, stage.ErrEmptyTranscript)
	}

	if len(text) != len(raw) {
		log.Info(ctx, "Transcript: %d characters (%d before trimming whitespace)", len(text), len(raw))
	} else {
		log.Info(ctx, "Transcript: %d characters", len(text))
	}
	return text, nil
}
