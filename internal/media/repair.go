package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// Repair strategies reported in RepairResult
const (
	StrategyStreamCopy = "stream-copy"
	StrategyReencode   = "re-encode"
)

// RepairResult describes the file written by Repair
type RepairResult struct {
	Path     string
	Strategy string
}

// RepairedPath returns the "_fixed" sibling of inputPath, e.g. talk.mp4 -> talk_fixed.mp4.
// Inputs without an extension get .mp4 so ffmpeg can pick a muxer.
func RepairedPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	if ext == "" {
		return inputPath + "_fixed.mp4"
	}
	return strings.TrimSuffix(inputPath, ext) + "_fixed" + ext
}

// Repair remuxes inputPath into outputPath without re-encoding, moving the
// moov atom to the front. If that fails it re-encodes with the configured
// codecs. A failed re-encode is terminal. Partial output is left on disk.
func (m *implMedia) Repair(ctx context.Context, inputPath, outputPath string) (RepairResult, error) {
	if filepath.Clean(inputPath) == filepath.Clean(outputPath) {
		return RepairResult{}, stage.Fail(stage.Repair, stage.ErrRepairFailed,
			fmt.Errorf("output path must differ from input: %s", inputPath))
	}

	m.logger.Info(ctx, "Repairing video by copying streams: %s -> %s", inputPath, outputPath)

	_, err := m.executor.Execute(ctx, m.cfg.Binary, streamCopyArgs(inputPath, outputPath)...)
	if err == nil {
		m.logger.Info(ctx, "Video repaired successfully (stream copy)")
		return RepairResult{Path: outputPath, Strategy: StrategyStreamCopy}, nil
	}
	m.logger.Warn(ctx, "Stream copy failed: %s", failureDetail(err))

	m.logger.Info(ctx, "Re-encoding video as a fallback (%s/%s)...", m.cfg.VideoCodec, m.cfg.AudioCodec)
	if _, err := m.executor.Execute(ctx, m.cfg.Binary, m.reencodeArgs(inputPath, outputPath)...); err != nil {
		m.logger.Error(ctx, "Re-encode failed: %s", failureDetail(err))
		return RepairResult{}, stage.Fail(stage.Repair, stage.ErrRepairFailed, err)
	}

	m.logger.Info(ctx, "Video re-encoded successfully")
	return RepairResult{Path: outputPath, Strategy: StrategyReencode}, nil
}

func streamCopyArgs(inputPath, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-y",
		"-i", inputPath,
		"-c", "copy",
		"-movflags", "+faststart",
		outputPath,
	}
}

func (m *implMedia) reencodeArgs(inputPath, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-y",
		"-i", inputPath,
		"-c:v", m.cfg.VideoCodec,
		"-c:a", m.cfg.AudioCodec,
		outputPath,
	}
}

// failureDetail prefers ffmpeg's own stderr over the bare exit status
func failureDetail(err error) string {
	if stderr := strings.TrimSpace(executor.Stderr(err)); stderr != "" {
		lines := strings.Split(stderr, "\n")
		return lines[len(lines)-1]
	}
	return err.Error()
}
