package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// IsURL reports whether input should be fetched rather than read locally
func IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// Resolve classifies input, downloads it when it is a URL, and validates the result
func (r *implResolver) Resolve(ctx context.Context, input string) (models.ResolvedMedia, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.ResolvedMedia{}, apperr.Errorf(apperr.KindValidation, "resolve", "empty input")
	}

	var (
		path      string
		sourceURL string
		err       error
	)
	if IsURL(input) {
		sourceURL = input
		path, err = r.download(ctx, input)
	} else {
		path, err = localPath(input)
	}
	if err != nil {
		return models.ResolvedMedia{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.ResolvedMedia{}, apperr.New(apperr.KindNotFound, "media not found at", path, nil)
		}
		return models.ResolvedMedia{}, apperr.New(apperr.KindIO, "stat", path, err)
	}
	if info.IsDir() {
		return models.ResolvedMedia{}, apperr.New(apperr.KindNotFound, "expected a file, got directory", path, nil)
	}

	format := Classify(path)
	if format == FormatUnsupported {
		ext := filepath.Ext(path)
		if ext == "" {
			ext = "(none)"
		}
		return models.ResolvedMedia{}, apperr.Errorf(apperr.KindUnsupportedFormat, "resolve", "unsupported format: %s", ext)
	}

	media := models.ResolvedMedia{
		Path:      path,
		Title:     stem(path),
		SourceURL: sourceURL,
	}

	if format == FormatDocument {
		media.IsDocument = true
		media.SourceType = models.SourceDocument
		r.logger.Info(ctx, "Resolved document: %s", path)
		return media, nil
	}

	probe, err := r.prober.Probe(ctx, path)
	if err != nil {
		return models.ResolvedMedia{}, apperr.New(apperr.KindIngestion, "probe", path, err)
	}
	if probe.HasDuration && r.cfg.MaxDuration > 0 && probe.DurationSeconds > r.cfg.MaxDuration.Seconds() {
		return models.ResolvedMedia{}, apperr.Errorf(apperr.KindValidation, "resolve",
			"media is %.0fs long, exceeds the configured maximum of %.0fs", probe.DurationSeconds, r.cfg.MaxDuration.Seconds())
	}

	if t := strings.TrimSpace(probe.Title); t != "" {
		media.Title = t
	}
	media.DurationSeconds = probe.DurationSeconds
	media.HasDuration = probe.HasDuration
	media.IsVideo = format == FormatVideo
	media.SourceType = sourceType(sourceURL, media.IsVideo)

	r.logger.Info(ctx, "Resolved media: %s (title=%q, duration=%.1fs)", path, media.Title, media.DurationSeconds)
	return media, nil
}

func (r *implResolver) download(ctx context.Context, rawURL string) (string, error) {
	if r.cfg.DownloadDir == "" {
		return "", apperr.Errorf(apperr.KindValidation, "resolve",
			"download directory is not configured; provide a local path instead of a URL")
	}

	dir, err := filepath.Abs(r.cfg.DownloadDir)
	if err != nil {
		return "", apperr.New(apperr.KindIO, "resolve download dir", r.cfg.DownloadDir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.New(apperr.KindIO, "create download dir", dir, err)
	}

	snap, err := snapshot(dir)
	if err != nil {
		return "", apperr.New(apperr.KindIO, "list download dir", dir, err)
	}

	start := now()
	r.logger.Info(ctx, "Triggering download of %s into %s", rawURL, dir)
	done, err := r.fetcher.Fetch(ctx, rawURL, dir)
	if err != nil {
		return "", apperr.New(apperr.KindNotFound, "trigger download of", rawURL, err)
	}

	return r.waitForDownload(ctx, rawURL, dir, snap, start, done)
}

func localPath(input string) (string, error) {
	p := input
	if strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", apperr.New(apperr.KindValidation, "expand home in", input, err)
		}
		p = filepath.Join(home, p[2:])
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", apperr.New(apperr.KindValidation, "resolve path", input, err)
	}
	return abs, nil
}

func sourceType(sourceURL string, isVideo bool) models.SourceType {
	if sourceURL != "" {
		u, err := url.Parse(sourceURL)
		if err == nil {
			host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
			host = strings.TrimPrefix(host, "m.")
			if host == "youtube.com" || host == "youtu.be" || host == "music.youtube.com" {
				return models.SourceYouTube
			}
		}
		return models.SourceWeb
	}
	if isVideo {
		return models.SourceVideo
	}
	return models.SourceAudio
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (f Format) String() string {
	switch f {
	case FormatAudio:
		return "audio"
	case FormatVideo:
		return "video"
	case FormatDocument:
		return "document"
	default:
		return fmt.Sprintf("unsupported(%d)", int(f))
	}
}
