package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Process runs an inbox file in the watch mode and moves it to the archive
// folder when the run succeeded. Failed files stay in the inbox.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	if _, err := p.Run(ctx, path, p.cfg.WatchMode); err != nil {
		return err
	}

	if p.cfg.ArchiveDir == "" {
		return nil
	}
	if _, err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move %s to archived folder: %v", path, err)
	}
	return nil
}

// moveToArchived moves a processed file into the archive folder without
// overwriting an earlier file of the same name.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) (string, error) {
	if err := os.MkdirAll(p.cfg.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("create archived dir: %w", err)
	}

	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	dest := filepath.Join(p.cfg.ArchiveDir, name)
	for n := 1; ; n++ {
		_, err := os.Lstat(dest)
		if os.IsNotExist(err) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("check archived name: %w", err)
		}
		dest = filepath.Join(p.cfg.ArchiveDir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, dest)
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move to archived: %w", err)
	}
	return dest, nil
}
