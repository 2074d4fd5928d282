package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/nguyentantai21042004/transcript-flow/internal/media"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

// RunCmd runs the pipeline once
type RunCmd struct {
	Video      string `arg:"" optional:"" help:"Input video. Defaults to paths.video." type:"path"`
	Audio      string `help:"Audio output. Defaults to paths.audio, then <paths.audio_dir>/<video>.wav." type:"path"`
	Transcript string `help:"Transcript file to append to. Defaults to paths.transcript." type:"path"`
}

func (c *RunCmd) Run(ctx context.Context, a *app) error {
	req := processor.Request{
		VideoPath:      firstNonEmpty(c.Video, a.cfg.Paths.Video),
		AudioPath:      firstNonEmpty(c.Audio, a.cfg.Paths.Audio),
		TranscriptPath: firstNonEmpty(c.Transcript, a.cfg.Paths.Transcript),
	}
	if req.VideoPath == "" {
		return errors.New("no input video: pass one or set paths.video")
	}
	if req.AudioPath == "" {
		req.AudioPath = audioPathFor(a.cfg.Paths.AudioDir, req.VideoPath)
	}

	if err := media.CheckFFmpeg(a.cfg.FFmpeg.Binary); err != nil {
		return err
	}

	provider, err := a.provider()
	if err != nil {
		return err
	}
	defer provider.Close()

	result, err := processor.New(a.cfg, a.media(), provider, a.logger).Process(ctx, req)
	if err != nil {
		return err
	}
	a.logger.Debug(ctx, "%s", result)
	return nil
}

// InspectCmd prints the diagnostics Inspect collects
type InspectCmd struct {
	Video string `arg:"" help:"Video to inspect." type:"existingfile"`
	Trace bool   `help:"Also print the full ffmpeg trace."`
}

func (c *InspectCmd) Run(ctx context.Context, a *app) error {
	report, err := a.media().Inspect(ctx, c.Video)
	if report != nil {
		fmt.Printf("File:    %s\n", c.Video)
		fmt.Printf("Size:    %s\n", humanize.Bytes(uint64(report.Size)))
		fmt.Printf("MIME:    %s\n", report.MIME)
		if report.Probe != nil {
			fmt.Printf("Streams: %s\n", report.Probe.Summary())
		}
		if c.Trace && report.Trace != "" {
			fmt.Println()
			fmt.Println(report.Trace)
		}
	}
	return err
}

// WatchCmd transcribes new videos as they land in the watch directory
type WatchCmd struct {
	Dir string `arg:"" optional:"" help:"Directory to watch. Defaults to paths.watch_dir." type:"path"`
}

func (c *WatchCmd) Run(ctx context.Context, a *app) error {
	dir := firstNonEmpty(c.Dir, a.cfg.Paths.WatchDir)
	if err := ensureDirectories(dir, a.cfg.Paths.AudioDir); err != nil {
		return err
	}
	if err := media.CheckFFmpeg(a.cfg.FFmpeg.Binary); err != nil {
		return err
	}

	provider, err := a.provider()
	if err != nil {
		return err
	}
	defer provider.Close()

	proc := processor.New(a.cfg, a.media(), provider, a.logger)
	handler := func(ctx context.Context, videoPath string) error {
		_, err := proc.Process(ctx, processor.Request{
			VideoPath:      videoPath,
			AudioPath:      audioPathFor(a.cfg.Paths.AudioDir, videoPath),
			TranscriptPath: a.cfg.Paths.Transcript,
		})
		return err
	}

	w, err := watcher.New(dir, handler, a.logger, 0)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Transcript pipeline is ready!")
	a.logger.Info(ctx, "Monitoring: %s", dir)
	a.logger.Info(ctx, "Transcript: %s", a.cfg.Paths.Transcript)
	a.logger.Info(ctx, "Provider: %s (%s)", provider.Name(), a.cfg.Transcriber.Model)
	a.logger.Info(ctx, "Press Ctrl+C to stop")
	a.logger.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info(ctx, "Shutting down gracefully...")
	return nil
}

// SummarizeCmd writes a markdown summary next to every transcript
type SummarizeCmd struct {
	Dir  string `arg:"" help:"Directory of .txt transcripts." type:"existingdir"`
	Dest string `help:"Output directory. Defaults to <dir>/summaries." type:"path"`
	Docx bool   `help:"Also write a .docx copy of each summary."`
}

func (c *SummarizeCmd) Run(ctx context.Context, a *app) error {
	client, err := a.geminiClient()
	if err != nil {
		return err
	}

	dest := firstNonEmpty(c.Dest, filepath.Join(c.Dir, "summaries"))
	stats, err := summarizer.New(client, a.cfg.Gemini.Model, c.Docx, a.logger).SummarizeAll(ctx, c.Dir, dest)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d transcripts failed to summarize", stats.Failed, stats.Failed+stats.Succeeded)
	}
	return nil
}

// ModelsCmd groups the model catalog commands
type ModelsCmd struct {
	List     ModelsListCmd     `cmd:"" default:"1" help:"List known models and whether they are downloaded."`
	Download ModelsDownloadCmd `cmd:"" help:"Download a model into transcriber.models_dir."`
}

type ModelsListCmd struct{}

func (c *ModelsListCmd) Run(a *app) error {
	dir := a.cfg.Transcriber.ModelsDir
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tSIZE\tSTATUS")
	for _, m := range transcriber.WhisperModels {
		status := ""
		if transcriber.IsModelDownloaded(dir, m.Name) {
			status = "downloaded"
		}
		if m.Name == a.cfg.Transcriber.Model {
			status = strings.TrimSpace(status + " (configured)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.Label, humanize.Bytes(uint64(m.SizeBytes)), status)
	}
	return tw.Flush()
}

type ModelsDownloadCmd struct {
	Name  string `arg:"" optional:"" help:"Model name, e.g. base or ggml-small.en.bin. Defaults to transcriber.model."`
	Force bool   `help:"Download even if the file already exists."`
}

func (c *ModelsDownloadCmd) Run(ctx context.Context, a *app) error {
	name := firstNonEmpty(c.Name, a.cfg.Transcriber.Model)
	model := transcriber.GetModel(name)
	if model == nil {
		return fmt.Errorf("unknown model %q (see 'transcribe models list')", name)
	}

	dir := a.cfg.Transcriber.ModelsDir
	if !c.Force && transcriber.IsModelDownloaded(dir, model.Name) {
		a.logger.Info(ctx, "Model already present: %s", filepath.Join(dir, model.Name))
		return nil
	}

	_, err := transcriber.NewDownloader(nil, a.logger).Download(ctx, model, dir)
	return err
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("transcribe", version)
	return nil
}

// audioPathFor places <video base>.wav in audioDir
func audioPathFor(audioDir, videoPath string) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(audioDir, base+".wav")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
