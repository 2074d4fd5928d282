package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := func() Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing model for whispercpp",
			mutate:  func(c *Config) { c.Transcriber.Model = "" },
			wantErr: true,
		},
		{
			name: "whisper-cli without binary",
			mutate: func(c *Config) {
				c.Transcriber.Provider = ProviderWhisperCLI
				c.Transcriber.BinaryPath = ""
			},
			wantErr: true,
		},
		{
			name:    "openai needs no model files",
			mutate:  func(c *Config) { c.Transcriber.Provider = ProviderOpenAI; c.Transcriber.Model = "" },
			wantErr: false,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Transcriber.Provider = "vosk" },
			wantErr: true,
		},
		{
			name:    "missing fallback codec",
			mutate:  func(c *Config) { c.FFmpeg.VideoCodec = "" },
			wantErr: true,
		},
		{
			name:    "negative sample rate",
			mutate:  func(c *Config) { c.FFmpeg.SampleRate = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
ffmpeg:
  sample_rate: 16000
  channels: 1

transcriber:
  provider: "whisper-cli"
  binary_path: "./whisper"
  model: "ggml-small.bin"
  language: "en"

paths:
  video: "talk.mp4"
  audio: "out/talk.wav"
  transcript: "out/section.txt"

logging:
  level: "debug"
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Transcriber.Provider != ProviderWhisperCLI {
		t.Errorf("Provider = %v, want %v", cfg.Transcriber.Provider, ProviderWhisperCLI)
	}
	if cfg.Transcriber.Model != "ggml-small.bin" {
		t.Errorf("Model = %v, want %v", cfg.Transcriber.Model, "ggml-small.bin")
	}
	if cfg.Paths.Transcript != "out/section.txt" {
		t.Errorf("Transcript = %v, want %v", cfg.Paths.Transcript, "out/section.txt")
	}
	if cfg.FFmpeg.SampleRate != 16000 {
		t.Errorf("SampleRate = %v, want 16000", cfg.FFmpeg.SampleRate)
	}

	// Unset fields come from Default
	if cfg.FFmpeg.VideoCodec != "libx264" || cfg.FFmpeg.AudioCodec != "aac" {
		t.Errorf("codecs = %s/%s, want libx264/aac", cfg.FFmpeg.VideoCodec, cfg.FFmpeg.AudioCodec)
	}
	if cfg.FFmpeg.Binary != "ffmpeg" {
		t.Errorf("Binary = %v, want ffmpeg", cfg.FFmpeg.Binary)
	}
	if cfg.Paths.WatchDir != "data/input" {
		t.Errorf("WatchDir = %v, want data/input", cfg.Paths.WatchDir)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Fatal("Load() should return error for nonexistent file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ffmpeg: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if cfg.Transcriber.Provider != ProviderWhisperCpp {
		t.Errorf("Provider = %v, want %v", cfg.Transcriber.Provider, ProviderWhisperCpp)
	}
	if cfg.Transcriber.Model != "ggml-base.bin" {
		t.Errorf("Model = %v, want ggml-base.bin", cfg.Transcriber.Model)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"models", "models"},
		{"~/models", filepath.Join(home, "models")},
		{"/abs/~/x", "/abs/~/x"},
	}

	for _, tt := range tests {
		got, err := ExpandTilde(tt.in)
		if err != nil {
			t.Fatalf("ExpandTilde(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
