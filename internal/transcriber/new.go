package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
	"github.com/nguyentantai21042004/transcript-flow/pkg/gemini"
)

// Options carries the runtime dependencies and secrets providers need
type Options struct {
	FFmpegBinary  string
	Executor      executor.Executor
	Logger        logger.Logger
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKeys    []string
}

// New creates the provider named by cfg.Provider
func New(cfg config.TranscriberConfig, opts Options) (Provider, error) {
	if opts.FFmpegBinary == "" {
		opts.FFmpegBinary = "ffmpeg"
	}

	switch cfg.Provider {
	case config.ProviderWhisperCpp:
		loader := &sampleLoader{
			ffmpeg:   opts.FFmpegBinary,
			executor: opts.Executor,
			logger:   opts.Logger,
		}
		p, err := NewWhisperCppProvider(cfg, loader, opts.Logger)
		if err != nil {
			return nil, err
		}
		return p, nil

	case config.ProviderWhisperCLI:
		return NewWhisperCLIProvider(cfg, opts.FFmpegBinary, opts.Executor, opts.Logger), nil

	case config.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg, opts.OpenAIKey, opts.OpenAIBaseURL, opts.Logger)
		if err != nil {
			return nil, err
		}
		return p, nil

	case config.ProviderGemini:
		client, err := gemini.New(opts.GeminiKeys, opts.Logger)
		if err != nil {
			return nil, fmt.Errorf("gemini provider: %w", err)
		}
		return NewGeminiProvider(cfg, client, opts.Logger), nil

	default:
		return nil, fmt.Errorf("unknown transcriber provider: %q", cfg.Provider)
	}
}
