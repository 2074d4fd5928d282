package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// DefaultSettleDelay is how long a new file must stay unchanged before it is handled
const DefaultSettleDelay = 500 * time.Millisecond

// New creates a Watcher on inputDir. A settle delay of zero or less means
// DefaultSettleDelay.
func New(inputDir string, handler EventHandler, log logger.Logger, settleDelay time.Duration) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}

	return &implWatcher{
		inputDir:    inputDir,
		handler:     handler,
		logger:      log,
		watcher:     watcher,
		settleDelay: settleDelay,
	}, nil
}
