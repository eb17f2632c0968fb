package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
)

var now = time.Now

// reIntermediate matches yt-dlp per-format streams (Title.f137.mp4) and
// merge outputs still being written (Title.temp.mp4).
var reIntermediate = regexp.MustCompile(`\.(f\d+|temp)\.[^.]+$`)

// snapshot records the modification time of every file currently in dir
func snapshot(dir string) (map[string]time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	snap := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snap[e.Name()] = info.ModTime()
	}
	return snap, nil
}

// waitForDownload re-checks dir every poll interval until a media file that
// was not there before start shows up. A filesystem watch only shortens the
// wait; the ticker is what guarantees progress. When the downloader exits
// the wait ends after one last check.
func (r *implResolver) waitForDownload(ctx context.Context, rawURL, dir string, snap map[string]time.Time, start time.Time, done <-chan error) (string, error) {
	r.logger.Info(ctx, "Polling %s for downloaded media (every %s, timeout %s)", dir, r.cfg.PollInterval, r.cfg.PollTimeout)

	timeout := time.NewTimer(r.cfg.PollTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if w, err := fsnotify.NewWatcher(); err != nil {
		r.logger.Debug(ctx, "Directory watch unavailable, polling only: %v", err)
	} else {
		defer w.Close()
		if err := w.Add(dir); err != nil {
			r.logger.Debug(ctx, "Directory watch unavailable, polling only: %v", err)
		} else {
			events, errs = w.Events, w.Errors
		}
	}

	for {
		if path, ok := newestCandidate(dir, snap, start); ok {
			r.logger.Info(ctx, "Using downloaded media: %s", path)
			return path, nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", apperr.New(apperr.KindTimeout, "wait for download in", dir, ctx.Err())
			}
			return "", ctx.Err()
		case <-timeout.C:
			if path, ok := newestCandidate(dir, snap, start); ok {
				r.logger.Info(ctx, "Using downloaded media: %s", path)
				return path, nil
			}
			return "", apperr.Errorf(apperr.KindTimeout, "wait for download",
				"no new media appeared in %s within %s", dir, r.cfg.PollTimeout)
		case <-ticker.C:
		case err := <-done:
			if path, ok := newestCandidate(dir, snap, start); ok {
				r.logger.Info(ctx, "Using downloaded media: %s", path)
				return path, nil
			}
			if err != nil {
				return "", apperr.New(apperr.KindNotFound, "download", rawURL, err)
			}
			return "", apperr.Errorf(apperr.KindNotFound, "download",
				"downloader finished but no new media appeared in %s", dir)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !ev.Has(fsnotify.Create) || !IsMedia(ev.Name) {
				continue
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.logger.Debug(ctx, "Directory watch error: %v", err)
		}
	}
}

// newestCandidate picks the most recently modified media file that is new or
// changed since the snapshot and not older than start. Downloader
// intermediates are never candidates.
func newestCandidate(dir string, snap map[string]time.Time, start time.Time) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	// mtime resolution is one second on some filesystems
	floor := start.Truncate(time.Second)

	var (
		best     string
		bestTime time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !IsMedia(e.Name()) || reIntermediate.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		mt := info.ModTime()
		if prev, seen := snap[e.Name()]; seen && prev.Equal(mt) {
			continue
		}
		if mt.Before(floor) {
			continue
		}
		if best == "" || mt.After(bestTime) || (mt.Equal(bestTime) && e.Name() > filepath.Base(best)) {
			best = filepath.Join(dir, e.Name())
			bestTime = mt
		}
	}
	return best, best != ""
}
