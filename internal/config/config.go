package config

import "fmt"

// Provider names accepted in transcriber.provider
const (
	ProviderWhisperCpp = "whispercpp"
	ProviderWhisperCLI = "whisper-cli"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
)

type Config struct {
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Paths       PathsConfig       `yaml:"paths"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type FFmpegConfig struct {
	Binary      string `yaml:"binary"`
	ProbeBinary string `yaml:"probe_binary"`
	// Codecs used by the re-encode repair fallback
	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec"`
	// Zero keeps ffmpeg's inference from the output extension
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
}

type TranscriberConfig struct {
	Provider    string `yaml:"provider"`
	Language    string `yaml:"language"`
	Threads     int    `yaml:"threads"`
	Model       string `yaml:"model"`
	ModelsDir   string `yaml:"models_dir"`
	BinaryPath  string `yaml:"binary_path"`
	OpenAIModel string `yaml:"openai_model"`
	GeminiModel string `yaml:"gemini_model"`
}

type PathsConfig struct {
	Video      string `yaml:"video"`
	Audio      string `yaml:"audio"`
	Transcript string `yaml:"transcript"`
	WatchDir   string `yaml:"watch_dir"`
	AudioDir   string `yaml:"audio_dir"`
}

type OutputConfig struct {
	DocxDir string `yaml:"docx_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

// Default returns the configuration used for any field left empty in config.yaml
func Default() Config {
	return Config{
		FFmpeg: FFmpegConfig{
			Binary:      "ffmpeg",
			ProbeBinary: "ffprobe",
			VideoCodec:  "libx264",
			AudioCodec:  "aac",
		},
		Transcriber: TranscriberConfig{
			Provider:    ProviderWhisperCpp,
			Language:    "auto",
			Model:       "ggml-base.bin",
			ModelsDir:   "models",
			BinaryPath:  "whisper-cli",
			OpenAIModel: "whisper-1",
			GeminiModel: "gemini-2.5-flash",
		},
		Paths: PathsConfig{
			Transcript: "data/transcript.txt",
			WatchDir:   "data/input",
			AudioDir:   "data/audio",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

func (c *Config) Validate() error {
	if c.FFmpeg.Binary == "" {
		return fmt.Errorf("ffmpeg.binary is required")
	}
	if c.FFmpeg.VideoCodec == "" || c.FFmpeg.AudioCodec == "" {
		return fmt.Errorf("ffmpeg.video_codec and ffmpeg.audio_codec are required")
	}
	if c.FFmpeg.SampleRate < 0 || c.FFmpeg.Channels < 0 {
		return fmt.Errorf("ffmpeg.sample_rate and ffmpeg.channels must not be negative")
	}
	if c.Transcriber.Threads < 0 {
		return fmt.Errorf("transcriber.threads must not be negative")
	}

	switch c.Transcriber.Provider {
	case ProviderWhisperCpp:
		if c.Transcriber.Model == "" {
			return fmt.Errorf("transcriber.model is required for %s", ProviderWhisperCpp)
		}
		if c.Transcriber.ModelsDir == "" {
			return fmt.Errorf("transcriber.models_dir is required for %s", ProviderWhisperCpp)
		}
	case ProviderWhisperCLI:
		if c.Transcriber.BinaryPath == "" {
			return fmt.Errorf("transcriber.binary_path is required for %s", ProviderWhisperCLI)
		}
		if c.Transcriber.Model == "" {
			return fmt.Errorf("transcriber.model is required for %s", ProviderWhisperCLI)
		}
	case ProviderOpenAI, ProviderGemini:
	case "":
		return fmt.Errorf("transcriber.provider is required")
	default:
		return fmt.Errorf("unknown transcriber.provider %q", c.Transcriber.Provider)
	}

	return nil
}
