package transcriber

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
)

// WhisperCppProvider implements STT in process using whisper.cpp.
// The model is loaded on the first Transcribe call and kept until Close.
type WhisperCppProvider struct {
	cfg    config.TranscriberConfig
	loader *sampleLoader
	logger logger.Logger
	model  whisper.Model
}

// NewWhisperCppProvider creates a new Whisper.cpp STT provider.
func NewWhisperCppProvider(cfg config.TranscriberConfig, loader *sampleLoader, log logger.Logger) (*WhisperCppProvider, error) {
	if cfg.ModelsDir == "" {
		return nil, fmt.Errorf("whisper.cpp models_dir not configured")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("whisper.cpp model not configured")
	}
	return &WhisperCppProvider{
		cfg:    cfg,
		loader: loader,
		logger: log,
	}, nil
}

func (w *WhisperCppProvider) modelPath() string {
	return filepath.Join(w.cfg.ModelsDir, w.cfg.Model)
}

func (w *WhisperCppProvider) load(ctx context.Context) error {
	if w.model != nil {
		return nil
	}

	path := w.modelPath()
	if !IsModelDownloaded(w.cfg.ModelsDir, w.cfg.Model) {
		return fmt.Errorf("%w: %s (run 'transcribe models download %s')", stage.ErrModelNotFound, path, w.cfg.Model)
	}

	w.logger.Info(ctx, "Loading whisper.cpp model: %s", path)
	model, err := whisper.New(path)
	if err != nil {
		return fmt.Errorf("load whisper model: %w", err)
	}
	w.logger.Debug(ctx, "Whisper model loaded (multilingual: %v)", model.IsMultilingual())

	w.model = model
	return nil
}

// Transcribe converts an audio file to text using Whisper.cpp.
func (w *WhisperCppProvider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := w.load(ctx); err != nil {
		return "", err
	}

	samples, err := w.loader.Load(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("convert audio: %w", err)
	}
	w.logger.Info(ctx, "Transcribing %s (%.1fs of audio)", audioPath, float64(len(samples))/targetSampleRate)

	wctx, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("create whisper context: %w", err)
	}

	lang := normalizeLanguage(w.cfg.Language)
	if lang == "" {
		lang = "auto"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		w.logger.Warn(ctx, "Failed to set language %q: %v", lang, err)
	}
	if w.cfg.Threads > 0 {
		wctx.SetThreads(uint(w.cfg.Threads))
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper process: %w", err)
	}

	var text strings.Builder
	for {
		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("get segment: %w", err)
		}
		text.WriteString(segment.Text)
	}

	result := strings.TrimSpace(text.String())
	w.logger.Info(ctx, "Transcription completed: %d characters", len(result))
	return result, nil
}

// Name returns the provider name.
func (w *WhisperCppProvider) Name() string {
	return config.ProviderWhisperCpp
}

// Close releases the whisper model.
func (w *WhisperCppProvider) Close() error {
	if w.model == nil {
		return nil
	}
	err := w.model.Close()
	w.model = nil
	return err
}

// normalizeLanguage maps "auto" and empty language to no override
func normalizeLanguage(raw string) string {
	lang := strings.TrimSpace(raw)
	if lang == "" || strings.EqualFold(lang, "auto") {
		return ""
	}
	return lang
}
