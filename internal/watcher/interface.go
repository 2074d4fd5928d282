package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one new video. Handlers run one at a time, in the
// order the files appeared.
type EventHandler func(ctx context.Context, filePath string) error
