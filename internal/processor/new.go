package processor

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
)

type implProcessor struct {
	cfg      *config.Config
	media    media.Media
	provider transcriber.Provider
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, m media.Media, provider transcriber.Provider, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		media:    m,
		provider: provider,
		logger:   log,
	}
}
