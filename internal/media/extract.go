package media

import (
	"context"
	"strconv"

	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
)

// Extract decodes the audio track of videoPath into audioPath. The output
// format follows the audioPath extension unless a sample rate or channel
// count is configured. -vn is always passed so that an output container
// able to hold video (.mp4, .mkv) still gets audio only; for audio
// extensions ffmpeg would drop the video anyway. There is no fallback.
func (m *implMedia) Extract(ctx context.Context, videoPath, audioPath string) error {
	m.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	if _, err := m.executor.Execute(ctx, m.cfg.Binary, m.extractArgs(videoPath, audioPath)...); err != nil {
		m.logger.Error(ctx, "Error extracting audio: %s", failureDetail(err))
		return stage.Fail(stage.Extract, stage.ErrExtractFailed, err)
	}

	m.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return nil
}

// extractArgs builds the ffmpeg arguments for audio extraction
// -vn: drop video
// -ar / -ac: only when configured, otherwise ffmpeg keeps the source layout
func (m *implMedia) extractArgs(videoPath, audioPath string) []string {
	args := []string{
		"-hide_banner",
		"-y",
		"-i", videoPath,
		"-vn",
	}
	if m.cfg.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(m.cfg.SampleRate))
	}
	if m.cfg.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(m.cfg.Channels))
	}
	return append(args, audioPath)
}
