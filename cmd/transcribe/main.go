package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// CLI is the command line of the transcribe tool
type CLI struct {
	Config   string `help:"Path to the YAML config file." default:"config.yaml" type:"path" short:"c"`
	LogLevel string `help:"Override logging.level (debug, info, warn, error)." name:"log-level"`
	EnvFile  string `help:"Load environment variables from this file when it exists." name:"env-file" default:".env"`

	Run       RunCmd       `cmd:"" default:"withargs" help:"Repair, extract, transcribe and append one video (default)."`
	Inspect   InspectCmd   `cmd:"" help:"Print diagnostics for a video file."`
	Watch     WatchCmd     `cmd:"" help:"Transcribe every new video that appears in paths.watch_dir."`
	Summarize SummarizeCmd `cmd:"" help:"Summarize transcript files with Gemini."`
	Models    ModelsCmd    `cmd:"" help:"List or download whisper.cpp models."`
	Version   VersionCmd   `cmd:"" help:"Print the version."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("transcribe"),
		kong.Description("Repair a video, extract its audio and append a speech transcript to a text file."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app, err := newApp(cli)
	if err != nil {
		stop()
		bootstrapError(ctx, err)
		os.Exit(1)
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(app); err != nil {
		app.logger.Error(ctx, "run failed: %v", err)
		stop()
		os.Exit(1)
	}
	stop()
}
