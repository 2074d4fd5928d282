package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/transcript"
	"google.golang.org/genai"
)

const summaryPrompt = `You are summarizing the transcript of a recorded talk. Write a DETAILED summary in the language of the transcript.

Requirements:
- Start with a one-sentence title describing the topic
- List ALL main points in the order they appear
- Explain each point, including caveats, tips and warnings that were mentioned
- Keep technical terms as they were spoken
- Use markdown: headings, bullet points, bold for key words
- End with a "Key takeaways" section if anything deserves emphasis

Transcript:
---
%s
---`

// SummarizeAll reads every .txt transcript in srcDir, calls Gemini for each
// and writes <name>.md (and <name>.docx when enabled) into destDir.
// Transcripts that already have a summary are skipped. One failed file does
// not stop the others.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) (Stats, error) {
	var stats Stats

	files, err := discoverTranscripts(srcDir)
	if err != nil {
		return stats, fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", srcDir)
		return stats, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return stats, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcripts to summarize", len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		mdPath := filepath.Join(destDir, name+".md")

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Info(ctx, "[%d/%d] Already summarized: %s", i+1, len(files), name)
			stats.Skipped++
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(ctx, "Cannot check %s: %v", mdPath, err)
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)

		if err := s.summarizeOne(ctx, path, name, mdPath); err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			stats.Failed++
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		stats.Succeeded++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed, %d skipped", stats.Succeeded, stats.Failed, stats.Skipped)
	return stats, nil
}

func (s *implSummarizer) summarizeOne(ctx context.Context, path, name, mdPath string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("transcript is empty")
	}

	summary, err := s.client.Generate(ctx, s.model, genai.Text(fmt.Sprintf(summaryPrompt, content)))
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return fmt.Errorf("empty response from Gemini")
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		summary,
	)
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	if s.writeDocx {
		docxPath := strings.TrimSuffix(mdPath, ".md") + ".docx"
		if err := transcript.ExportMarkdownDocx(docxPath, name, summary); err != nil {
			s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		}
	}
	return nil
}

// discoverTranscripts lists the visible .txt files in dir, sorted by name
func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
