package processor

import (
	"context"
	"time"
)

// Processor runs the repair, extract, transcribe and append pipeline for one video
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

// Request names the input video and the two files the run writes
type Request struct {
	VideoPath      string
	AudioPath      string
	TranscriptPath string
}

// Result describes a successful run
type Result struct {
	RunID        string
	RepairedPath string
	Strategy     string
	Transcript   string
	DocxPath     string
	Duration     time.Duration
}
