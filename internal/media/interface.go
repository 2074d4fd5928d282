package media

import "context"

// Media wraps the ffmpeg operations the pipeline runs against a video file
type Media interface {
	// Inspect collects structural diagnostics. Its result is for logging only.
	Inspect(ctx context.Context, inputPath string) (*Report, error)
	// Repair normalizes the container, falling back to a full re-encode.
	Repair(ctx context.Context, inputPath, outputPath string) (RepairResult, error)
	// Extract decodes the audio track of videoPath into audioPath.
	Extract(ctx context.Context, videoPath, audioPath string) error
}
