// Package stage holds the error taxonomy shared by the pipeline stages.
package stage

import (
	"errors"
	"fmt"
)

// Stage names carried by Error and used in log lines
const (
	Inspect    = "inspect"
	Repair     = "repair"
	Extract    = "extract"
	Transcribe = "transcribe"
	Append     = "append"
)

var (
	// ErrRepairFailed means both the stream-copy and the re-encode strategy failed
	ErrRepairFailed = errors.New("video repair failed")

	// ErrExtractFailed means the audio track could not be decoded
	ErrExtractFailed = errors.New("audio extraction failed")

	// ErrTranscribeFailed means the model could not be loaded or inference failed
	ErrTranscribeFailed = errors.New("transcription failed")

	// ErrEmptyTranscript means the model produced no text
	ErrEmptyTranscript = errors.New("transcription produced no text")

	// ErrAppendFailed means the transcript could not be written to the output file
	ErrAppendFailed = errors.New("transcript append failed")

	// ErrFFmpegNotFound means the configured ffmpeg binary is not on PATH
	ErrFFmpegNotFound = errors.New("ffmpeg not found on PATH")

	// ErrModelNotFound means the configured model file does not exist
	ErrModelNotFound = errors.New("speech model not found")
)

// Error ties a failure to the stage that produced it.
// Kind is the sentinel for the stage; Err is the underlying cause.
type Error struct {
	Stage string
	Kind  error
	Err   error
}

// Fail builds a stage error for the given stage, sentinel and cause
func Fail(stage string, kind, err error) *Error {
	return &Error{Stage: stage, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Of returns the stage name carried by err, or "" if err is not a stage error
func Of(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
