package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"google.golang.org/genai"
)

// generator is the part of the Gemini client used here
type generator interface {
	Generate(ctx context.Context, model string, contents []*genai.Content) (string, error)
}

type implSummarizer struct {
	client    generator
	logger    logger.Logger
	model     string
	writeDocx bool
}

// New creates a Summarizer backed by a Gemini client. writeDocx adds a
// .docx copy of every summary.
func New(client generator, model string, writeDocx bool, log logger.Logger) Summarizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implSummarizer{
		client:    client,
		logger:    log,
		model:     model,
		writeDocx: writeDocx,
	}
}
