package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
)

// Process runs the stages in order. Inspection problems are logged and
// ignored; any other failure stops the run and is returned as is.
// Intermediate files are left on disk either way.
func (p *implProcessor) Process(ctx context.Context, req Request) (Result, error) {
	startTime := time.Now()
	result := Result{RunID: uuid.NewString()}
	ctx = logger.WithRunID(ctx, result.RunID)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcription run: %s", req.VideoPath)
	p.logger.Info(ctx, "Audio: %s | Transcript: %s | Provider: %s", req.AudioPath, req.TranscriptPath, p.provider.Name())
	p.logger.Info(ctx, "========================================")

	if err := p.ensureParentDirs(ctx, req.AudioPath, req.TranscriptPath); err != nil {
		return result, err
	}

	// Step 1: Inspect (diagnostics only)
	if _, err := p.media.Inspect(ctx, req.VideoPath); err != nil {
		p.logger.Warn(ctx, "Inspection incomplete, continuing: %v", err)
	}

	// Step 2: Repair
	repaired, err := p.media.Repair(ctx, req.VideoPath, media.RepairedPath(req.VideoPath))
	if err != nil {
		return result, err
	}
	result.RepairedPath = repaired.Path
	result.Strategy = repaired.Strategy

	// Step 3: Extract audio from the repaired copy
	if err := p.media.Extract(ctx, repaired.Path, req.AudioPath); err != nil {
		return result, err
	}

	// Step 4: Transcribe
	text, err := transcriber.Run(ctx, p.provider, req.AudioPath, p.logger)
	if err != nil {
		p.logger.Error(ctx, "Transcription failed for %s: %v", req.AudioPath, err)
		return result, err
	}
	result.Transcript = text

	// Step 5: Append to the transcript file
	if err := transcript.Append(req.TranscriptPath, text); err != nil {
		p.logger.Error(ctx, "Failed to append transcript to %s: %v", req.TranscriptPath, err)
		return result, err
	}
	p.logger.Info(ctx, "Transcript appended: %s", req.TranscriptPath)

	// Step 6: Optional docx copy
	if path := p.docxPath(req.VideoPath); path != "" {
		title := strings.TrimSuffix(filepath.Base(req.VideoPath), filepath.Ext(req.VideoPath))
		if err := transcript.ExportDocx(path, title, text); err != nil {
			p.logger.Warn(ctx, "Failed to export docx %s: %v", path, err)
		} else {
			result.DocxPath = path
			p.logger.Info(ctx, "Transcript exported: %s", path)
		}
	}

	result.Duration = time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run completed successfully!")
	p.logger.Info(ctx, "Repaired video: %s (%s)", result.RepairedPath, result.Strategy)
	p.logger.Info(ctx, "Transcript: %d characters", len(text))
	p.logger.Info(ctx, "Processing time: %s", result.Duration)
	p.logger.Info(ctx, "========================================")

	return result, nil
}

// String renders a one-line summary of the run
func (r Result) String() string {
	return fmt.Sprintf("run %s: %s via %s, %d characters in %s",
		r.RunID, r.RepairedPath, r.Strategy, len(r.Transcript), r.Duration.Round(time.Millisecond))
}
