package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/pkg/executor"
)

type ytdlpFetcher struct {
	executor executor.Executor
	binary   string
	timeout  time.Duration
	logger   logger.Logger
}

// NewYtdlp creates a Fetcher that starts yt-dlp in the background.
// The download is abandoned after timeout.
func NewYtdlp(exec executor.Executor, binary string, timeout time.Duration, log logger.Logger) Fetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &ytdlpFetcher{executor: exec, binary: binary, timeout: timeout, logger: log}
}

// ytdlpArgs asks for a single audio-bearing file so no separate
// video-only and audio-only streams land in destDir before a merge.
func ytdlpArgs(url, destDir string) []string {
	return []string{
		"--no-playlist",
		"--no-mtime",
		"-f", "bestaudio/best",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		url,
	}
}

func (f *ytdlpFetcher) Fetch(ctx context.Context, url, destDir string) (<-chan error, error) {
	if _, err := f.executor.LookPath(f.binary); err != nil {
		return nil, fmt.Errorf("%s not available: %w", f.binary, err)
	}

	args := ytdlpArgs(url, destDir)
	done := make(chan error, 1)

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	go func() {
		defer cancel()
		if _, err := f.executor.Execute(runCtx, f.binary, args...); err != nil {
			f.logger.Error(ctx, "Download of %s failed: %v", url, err)
			done <- fmt.Errorf("%s: %w", f.binary, err)
			return
		}
		f.logger.Debug(ctx, "Download of %s finished", url)
		done <- nil
	}()

	return done, nil
}
