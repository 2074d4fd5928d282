package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
)

func TestAudioPathFor(t *testing.T) {
	tests := []struct {
		dir, video, want string
	}{
		{"data/audio", "/videos/talk.mp4", "data/audio/talk.wav"},
		{"data/audio", "clip.final.mov", "data/audio/clip.final.wav"},
		{"", "talk.mp4", "talk.wav"},
	}
	for _, tt := range tests {
		if got := audioPathFor(tt.dir, tt.video); got != tt.want {
			t.Errorf("audioPathFor(%q, %q) = %q, want %q", tt.dir, tt.video, got, tt.want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty() = %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty() = %q, want empty", got)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Transcriber.Provider != config.ProviderWhisperCpp {
		t.Errorf("provider = %q, want default", cfg.Transcriber.Provider)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("transcriber:\n  provider: parrot\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() expected error for unknown provider")
	}
}

func TestNewAppAppliesLogLevel(t *testing.T) {
	a, err := newApp(CLI{
		Config:   filepath.Join(t.TempDir(), "missing.yaml"),
		LogLevel: "debug",
		EnvFile:  filepath.Join(t.TempDir(), ".env"),
	})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	if a.cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", a.cfg.Logging.Level)
	}
}
