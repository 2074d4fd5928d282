package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ensureParentDirs creates the directory holding each path. Existing
// directories are fine.
func (p *implProcessor) ensureParentDirs(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
		p.logger.Debug(ctx, "Output dir ready: %s", dir)
	}
	return nil
}

// docxPath returns where the .docx copy of a transcript goes, or "" when
// docx export is off
func (p *implProcessor) docxPath(videoPath string) string {
	if p.cfg.Output.DocxDir == "" {
		return ""
	}
	name := filepath.Base(videoPath)
	name = name[:len(name)-len(filepath.Ext(name))]
	return filepath.Join(p.cfg.Output.DocxDir, name+".docx")
}
