package transcriber

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// Downloader fetches whisper models into a directory
type Downloader struct {
	client *http.Client
	logger logger.Logger
}

// NewDownloader creates a Downloader. A nil client means http.DefaultClient.
func NewDownloader(client *http.Client, log logger.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, logger: log}
}

// Download writes model into destDir. The body goes to a ".download" temp
// file that is renamed into place only after the transfer completes.
func (d *Downloader) Download(ctx context.Context, model *WhisperModel, destDir string) (string, error) {
	if model == nil {
		return "", fmt.Errorf("model is nil")
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return "", fmt.Errorf("create models directory: %w", err)
	}

	destPath := filepath.Join(destDir, model.Name)
	tempPath := destPath + ".download"

	d.logger.Info(ctx, "Downloading %s (%s) from %s", model.Name, humanize.Bytes(uint64(model.SizeBytes)), model.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, model.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = model.SizeBytes
	}

	tempFile, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	progress := &progressWriter{ctx: ctx, logger: d.logger, total: total, lastLog: time.Now()}
	if _, err := io.Copy(tempFile, io.TeeReader(resp.Body, progress)); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("write model: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("rename file: %w", err)
	}

	d.logger.Info(ctx, "Download complete: %s (%s)", destPath, humanize.Bytes(uint64(progress.written)))
	return destPath, nil
}

// progressWriter logs download progress every two seconds
type progressWriter struct {
	ctx     context.Context
	logger  logger.Logger
	total   int64
	written int64
	lastLog time.Time
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if time.Since(p.lastLog) > 2*time.Second {
		percent := int(float64(p.written) / float64(p.total) * 100)
		p.logger.Info(p.ctx, "Downloading: %d%% (%s / %s)", percent,
			humanize.Bytes(uint64(p.written)), humanize.Bytes(uint64(p.total)))
		p.lastLog = time.Now()
	}
	return len(b), nil
}
