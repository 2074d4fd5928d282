package summarizer

import "context"

// Summarizer reads transcript files and produces LLM-generated markdown summaries.
type Summarizer interface {
	SummarizeAll(ctx context.Context, srcDir, destDir string) (Stats, error)
}

// Stats counts the outcome of one SummarizeAll call
type Stats struct {
	Succeeded int
	Failed    int
	Skipped   int
}
