package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// Report holds what Inspect learned about a file. Nothing downstream reads it.
type Report struct {
	Trace string
	Probe *ProbeResult
	MIME  string
	Size  int64
}

// Inspect runs a verbose ffmpeg trace, an ffprobe JSON probe and a magic-byte
// sniff of inputPath. Partial results are returned together with the joined
// errors of the steps that failed.
func (m *implMedia) Inspect(ctx context.Context, inputPath string) (*Report, error) {
	report := &Report{}
	var errs []error

	info, err := os.Stat(inputPath)
	if err != nil {
		return report, fmt.Errorf("stat %s: %w", inputPath, err)
	}
	report.Size = info.Size()

	if mtype, err := mimetype.DetectFile(inputPath); err != nil {
		errs = append(errs, fmt.Errorf("detect mime type: %w", err))
	} else {
		report.MIME = mtype.String()
	}

	trace, err := m.trace(ctx, inputPath)
	if err != nil {
		errs = append(errs, err)
	}
	report.Trace = trace

	probe, err := m.probe(ctx, inputPath)
	if err != nil {
		errs = append(errs, err)
	}
	report.Probe = probe

	m.logger.Info(ctx, "Inspected %s: %s, %s", inputPath, humanize.Bytes(uint64(report.Size)), report.MIME)
	if probe != nil {
		m.logger.Info(ctx, "Streams: %s", probe.Summary())
		if probe.Format.BitRate > 0 {
			m.logger.Debug(ctx, "Bitrate: %s/s", humanize.Bytes(uint64(probe.Format.BitRate/8)))
		}
		if !probe.HasAudio() {
			m.logger.Warn(ctx, "No audio stream found in %s", inputPath)
		}
	}
	if trace != "" {
		m.logger.Info(ctx, "ffmpeg trace (last %d lines):\n%s", traceTailLines, executor.LastLines(strings.TrimRight(trace, "\n"), traceTailLines))
		m.logger.Debug(ctx, "ffmpeg trace:\n%s", trace)
	}

	return report, errors.Join(errs...)
}

// traceTailLines is how much of the trace is shown at info level. The
// closing lines carry ffmpeg's verdict on the container.
const traceTailLines = 10

// trace runs ffmpeg -v trace with no output file. ffmpeg always exits
// non-zero in that mode, so a CommandError still carries a usable trace.
func (m *implMedia) trace(ctx context.Context, inputPath string) (string, error) {
	stdout, err := m.executor.Execute(ctx, m.cfg.Binary, "-hide_banner", "-v", "trace", "-i", inputPath)
	if err == nil {
		return stdout, nil
	}

	var cmdErr *executor.CommandError
	if errors.As(err, &cmdErr) && strings.TrimSpace(cmdErr.Stderr) != "" {
		return cmdErr.Stderr, nil
	}
	return "", fmt.Errorf("ffmpeg trace: %w", err)
}

func (m *implMedia) probe(ctx context.Context, inputPath string) (*ProbeResult, error) {
	out, err := m.executor.Execute(ctx, m.cfg.ProbeBinary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		inputPath,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", inputPath, err)
	}
	return ParseProbeJSON([]byte(out))
}
