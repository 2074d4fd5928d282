package transcriber

import (
	"os"
	"path/filepath"
	"strings"
)

// WhisperModel represents an available whisper.cpp model.
type WhisperModel struct {
	Name      string // Filename: "ggml-base.bin"
	Label     string // Display name: "Base Multilingual"
	SizeBytes int64  // For progress calculation
	URL       string // Download URL
}

const modelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// WhisperModels is the catalog of downloadable whisper.cpp models.
var WhisperModels = []WhisperModel{
	{Name: "ggml-tiny.en.bin", Label: "Tiny English", SizeBytes: 39_000_000},
	{Name: "ggml-tiny.bin", Label: "Tiny Multilingual", SizeBytes: 39_000_000},
	{Name: "ggml-base.en.bin", Label: "Base English", SizeBytes: 142_000_000},
	{Name: "ggml-base.bin", Label: "Base Multilingual", SizeBytes: 142_000_000},
	{Name: "ggml-small.en.bin", Label: "Small English", SizeBytes: 466_000_000},
	{Name: "ggml-small.bin", Label: "Small Multilingual", SizeBytes: 466_000_000},
	{Name: "ggml-medium.bin", Label: "Medium Multilingual", SizeBytes: 1_500_000_000},
	{Name: "ggml-large-v3.bin", Label: "Large V3 Multilingual", SizeBytes: 3_000_000_000},
}

func init() {
	for i := range WhisperModels {
		WhisperModels[i].URL = modelBaseURL + WhisperModels[i].Name
	}
}

// GetModel returns the catalog entry for name, or nil if not found.
// Short names such as "base" or "small.en" are accepted.
func GetModel(name string) *WhisperModel {
	if !strings.HasPrefix(name, "ggml-") {
		name = "ggml-" + name
	}
	if !strings.HasSuffix(name, ".bin") {
		name += ".bin"
	}
	for i := range WhisperModels {
		if WhisperModels[i].Name == name {
			return &WhisperModels[i]
		}
	}
	return nil
}

// IsModelDownloaded checks if a model file exists in the given directory.
func IsModelDownloaded(modelsDir, name string) bool {
	if modelsDir == "" || name == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(modelsDir, name))
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
