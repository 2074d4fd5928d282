package stage

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	cause := fmt.Errorf("open audio: %w", fs.ErrNotExist)
	err := fmt.Errorf("pipeline: %w", Fail(Extract, ErrExtractFailed, cause))

	if !errors.Is(err, ErrExtractFailed) {
		t.Error("errors.Is(err, ErrExtractFailed) = false, want true")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if errors.Is(err, ErrRepairFailed) {
		t.Error("errors.Is(err, ErrRepairFailed) = true, want false")
	}
	if got := Of(err); got != Extract {
		t.Errorf("Of() = %q, want %q", got, Extract)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with cause", Fail(Repair, ErrRepairFailed, errors.New("exit status 1")), "repair: video repair failed: exit status 1"},
		{"without cause", Fail(Transcribe, ErrEmptyTranscript, nil), "transcribe: transcription produced no text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOfNonStageError(t *testing.T) {
	if got := Of(errors.New("plain")); got != "" {
		t.Errorf("Of() = %q, want empty", got)
	}
}
