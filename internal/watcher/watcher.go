package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// VideoExtensions lists the file types the watcher hands to the pipeline
var VideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

// repairSuffix marks files written by the repair stage next to their input
const repairSuffix = "_fixed"

type implWatcher struct {
	inputDir    string
	handler     EventHandler
	logger      logger.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
}

// pendingFile is a detected video still waiting for its writes to settle
type pendingFile struct {
	path      string
	lastEvent time.Time
	size      int64
	modTime   time.Time
}

// Start blocks, handling each new video in the input directory until ctx
// is cancelled. A video is handed over once neither a Write event nor a
// change in size or mtime has been seen for the settle delay. Videos are
// handled one at a time in the order they were created. A handler error is
// logged and the loop keeps going.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(VideoExtensions, ", "))

	ticker := time.NewTicker(pollInterval(w.settleDelay))
	defer ticker.Stop()

	var pending []*pendingFile

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Has(fsnotify.Write) {
				if i := slices.IndexFunc(pending, func(p *pendingFile) bool { return p.path == event.Name }); i >= 0 {
					pending[i].lastEvent = time.Now()
				}
				continue
			}

			// Only CREATE starts tracking a file
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !ShouldHandle(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)
			pending = append(pending, &pendingFile{path: event.Name, lastEvent: time.Now()})

		case <-ticker.C:
			if len(pending) == 0 {
				continue
			}
			head := pending[0]
			if !w.settled(head) {
				continue
			}
			pending = pending[1:]

			if err := w.handler(ctx, head.path); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", head.path, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// settled reports whether f has been quiet for the settle delay. A size or
// mtime change since the last look counts as activity, which covers writes
// made while the handler was busy and no events were being read.
func (w *implWatcher) settled(f *pendingFile) bool {
	if info, err := os.Stat(f.path); err == nil {
		if info.Size() != f.size || !info.ModTime().Equal(f.modTime) {
			f.size, f.modTime = info.Size(), info.ModTime()
			f.lastEvent = time.Now()
			return false
		}
	}
	return time.Since(f.lastEvent) >= w.settleDelay
}

// pollInterval checks a few times per settle window
func pollInterval(settle time.Duration) time.Duration {
	return max(settle/4, 5*time.Millisecond)
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// IsVideoFile checks if the file has a supported video extension
func IsVideoFile(path string) bool {
	return slices.Contains(VideoExtensions, strings.ToLower(filepath.Ext(path)))
}

// ShouldHandle reports whether path is a new input video. Hidden files and
// repaired copies written back into the directory are skipped.
func ShouldHandle(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || !IsVideoFile(name) {
		return false
	}
	return !strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), repairSuffix)
}
