// Package transcript writes transcription results to their output files.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/transcript-flow/internal/stage"
)

// Separator follows every appended transcript
const Separator = "\n\n"

// Append adds text and a blank line to the end of path, creating the file
// and its parent directory when missing. Existing content is never touched.
// Writes are not locked, so two processes appending at once may interleave.
func Append(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return stage.Fail(stage.Append, stage.ErrAppendFailed, fmt.Errorf("create transcript dir: %w", err))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return stage.Fail(stage.Append, stage.ErrAppendFailed, fmt.Errorf("open transcript: %w", err))
	}

	if _, err := f.WriteString(text + Separator); err != nil {
		f.Close()
		return stage.Fail(stage.Append, stage.ErrAppendFailed, fmt.Errorf("write transcript: %w", err))
	}

	if err := f.Close(); err != nil {
		return stage.Fail(stage.Append, stage.ErrAppendFailed, fmt.Errorf("close transcript: %w", err))
	}
	return nil
}
