package media

import (
	"os/exec"

	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
)

// CheckFFmpeg verifies that the ffmpeg binary can be found
func CheckFFmpeg(binary string) error {
	if binary == "" {
		binary = "ffmpeg"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return stage.ErrFFmpegNotFound
	}
	return nil
}
