package media

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

type implMedia struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Media instance
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Media {
	if cfg.Binary == "" {
		cfg.Binary = "ffmpeg"
	}
	if cfg.ProbeBinary == "" {
		cfg.ProbeBinary = "ffprobe"
	}
	return &implMedia{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
