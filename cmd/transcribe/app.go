package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
	"github.com/nguyentantai21042004/transcript-flow/pkg/gemini"
)

// app holds the dependencies shared by every command
type app struct {
	cfg      *config.Config
	logger   logger.Logger
	executor executor.Executor
}

func newApp(cli CLI) (*app, error) {
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", cli.EnvFile, err)
		}
	}

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}

	return &app{
		cfg:      cfg,
		logger:   logger.New(cfg.Logging.Level),
		executor: executor.New(),
	}, nil
}

// loadConfig reads path, falling back to the defaults when the file is missing
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.LoadDefault()
	}
	return cfg, err
}

func (a *app) media() media.Media {
	return media.New(a.cfg.FFmpeg, a.executor, a.logger)
}

func (a *app) provider() (transcriber.Provider, error) {
	return transcriber.New(a.cfg.Transcriber, transcriber.Options{
		FFmpegBinary:  a.cfg.FFmpeg.Binary,
		Executor:      a.executor,
		Logger:        a.logger,
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		GeminiKeys:    gemini.SplitKeys(os.Getenv("GEMINI_API_KEY")),
	})
}

func (a *app) geminiClient() (*gemini.Client, error) {
	return gemini.New(gemini.SplitKeys(os.Getenv("GEMINI_API_KEY")), a.logger)
}

// bootstrapError reports a failure that happened before the logger existed
func bootstrapError(ctx context.Context, err error) {
	logger.New("error").Error(ctx, "run failed: %v", err)
}
