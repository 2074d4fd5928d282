package transcriber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownload(t *testing.T) {
	body := []byte("ggml model bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ggml-tiny.bin" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "writes model", url: srv.URL + "/ggml-tiny.bin"},
		{name: "http error", url: srv.URL + "/missing.bin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "models")
			model := &WhisperModel{Name: "ggml-tiny.bin", SizeBytes: int64(len(body)), URL: tt.url}

			path, err := NewDownloader(srv.Client(), discard()).Download(context.Background(), model, dir)
			if _, statErr := os.Stat(filepath.Join(dir, "ggml-tiny.bin.download")); !os.IsNotExist(statErr) {
				t.Errorf("temp file left behind: %v", statErr)
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("Download() expected error")
				}
				if IsModelDownloaded(dir, "ggml-tiny.bin") {
					t.Error("model reported as downloaded after a failed request")
				}
				return
			}
			if err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			if path != filepath.Join(dir, "ggml-tiny.bin") {
				t.Errorf("path = %q", path)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(body) {
				t.Errorf("model content = %q, want %q", got, body)
			}
		})
	}
}

func TestDownloadCancelledMidBody(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		w.Write(make([]byte, 1024))
		w.(http.Flusher).Flush()
		cancel()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	model := &WhisperModel{Name: "ggml-base.bin", SizeBytes: 1 << 20, URL: srv.URL + "/ggml-base.bin"}

	if _, err := NewDownloader(srv.Client(), discard()).Download(ctx, model, dir); err == nil {
		t.Fatal("Download() expected error after cancel")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("models dir should be empty, found %d entries", len(entries))
	}
}
