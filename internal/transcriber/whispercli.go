package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// WhisperCLIProvider runs the whisper.cpp command line binary
type WhisperCLIProvider struct {
	cfg      config.TranscriberConfig
	ffmpeg   string
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperCLIProvider creates a provider that shells out to cfg.BinaryPath
func NewWhisperCLIProvider(cfg config.TranscriberConfig, ffmpeg string, exec executor.Executor, log logger.Logger) *WhisperCLIProvider {
	return &WhisperCLIProvider{
		cfg:      cfg,
		ffmpeg:   ffmpeg,
		executor: exec,
		logger:   log,
	}
}

// Transcribe converts the audio to 16kHz mono WAV (the only input whisper-cli
// accepts), runs whisper with -otxt and reads the text file back.
func (w *WhisperCLIProvider) Transcribe(ctx context.Context, audioPath string) (string, error) {
	modelPath := w.cfg.Model
	if !filepath.IsAbs(modelPath) && w.cfg.ModelsDir != "" {
		modelPath = filepath.Join(w.cfg.ModelsDir, modelPath)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return "", fmt.Errorf("%w: %s", stage.ErrModelNotFound, modelPath)
	}

	workDir, err := os.MkdirTemp("", "whisper-cli-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "input.wav")
	convertArgs := []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", audioPath,
		"-vn",
		"-ar", strconv.Itoa(targetSampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		wavPath,
	}
	if _, err := w.executor.Execute(ctx, w.ffmpeg, convertArgs...); err != nil {
		return "", fmt.Errorf("prepare audio for whisper: %w", err)
	}

	outputPrefix := filepath.Join(workDir, "transcript")
	w.logger.Info(ctx, "Starting transcription with %s: %s", w.cfg.BinaryPath, audioPath)

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, w.buildArgs(modelPath, wavPath, outputPrefix)...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	content, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.TrimSpace(string(content))
	w.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

// buildArgs builds the whisper.cpp CLI arguments
// -m: model path
// -f: 16kHz WAV input
// -otxt / -of: write <prefix>.txt
// -l: language, omitted for auto detection
// -t: threads, omitted to let whisper decide
func (w *WhisperCLIProvider) buildArgs(modelPath, wavPath, outputPrefix string) []string {
	args := []string{
		"-m", modelPath,
		"-f", wavPath,
		"-otxt",
		"-of", outputPrefix,
	}
	if lang := normalizeLanguage(w.cfg.Language); lang != "" {
		args = append(args, "-l", lang)
	}
	if w.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.cfg.Threads))
	}
	return args
}

func (w *WhisperCLIProvider) Name() string {
	return config.ProviderWhisperCLI
}

func (w *WhisperCLIProvider) Close() error {
	return nil
}
