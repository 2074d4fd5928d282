package summarizer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	prompts []string
	reply   func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	prompt := contents[0].Parts[0].Text
	f.prompts = append(f.prompts, prompt)
	return f.reply(prompt)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverTranscripts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":       "b",
		"a.TXT":       "a",
		".hidden.txt": "h",
		"video.mp4":   "v",
	})
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := discoverTranscripts(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.TXT"), filepath.Join(dir, "b.txt")}
	if !slices.Equal(files, want) {
		t.Errorf("discoverTranscripts() = %v, want %v", files, want)
	}
}

func TestSummarizeAll(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "summaries")
	writeFiles(t, src, map[string]string{
		"talk.txt":   "hello world",
		"broken.txt": "fails",
		"empty.txt":  "   ",
	})

	gen := &fakeGenerator{reply: func(prompt string) (string, error) {
		if strings.Contains(prompt, "fails") {
			return "", errors.New("RESOURCE_EXHAUSTED")
		}
		return "## Greeting\n- **hello** world", nil
	}}

	s := New(gen, "", true, logger.NewWithWriter(io.Discard, "debug"))
	stats, err := s.SummarizeAll(context.Background(), src, dest)
	if err != nil {
		t.Fatalf("SummarizeAll() error = %v", err)
	}
	if stats != (Stats{Succeeded: 1, Failed: 2}) {
		t.Errorf("stats = %+v", stats)
	}

	md, err := os.ReadFile(filepath.Join(dest, "talk.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(md), "# talk\n") || !strings.Contains(string(md), "**hello** world") {
		t.Errorf("talk.md = %q", md)
	}
	if _, err := os.Stat(filepath.Join(dest, "talk.docx")); err != nil {
		t.Errorf("talk.docx not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "broken.md")); !os.IsNotExist(err) {
		t.Errorf("broken.md should not exist")
	}

	// Second pass skips what is already done
	stats, err = s.SummarizeAll(context.Background(), src, dest)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 {
		t.Errorf("second pass stats = %+v, want 1 skipped", stats)
	}
}

func TestSummarizeAllEmptyDir(t *testing.T) {
	gen := &fakeGenerator{reply: func(string) (string, error) { return "x", nil }}
	stats, err := New(gen, "", false, logger.NewWithWriter(io.Discard, "info")).SummarizeAll(context.Background(), t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if stats != (Stats{}) || len(gen.prompts) != 0 {
		t.Errorf("stats = %+v, prompts = %d", stats, len(gen.prompts))
	}
}
