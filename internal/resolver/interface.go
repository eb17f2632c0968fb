package resolver

import (
	"context"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Resolver turns an input reference into a concrete local artifact
type Resolver interface {
	Resolve(ctx context.Context, input string) (models.ResolvedMedia, error)
}

// ProbeResult is what a media probe reports about a file
type ProbeResult struct {
	DurationSeconds float64
	HasDuration     bool
	Title           string
}

// Prober reads duration and embedded title from a media file
type Prober interface {
	Probe(ctx context.Context, path string) (ProbeResult, error)
}

// Fetcher triggers an external download into destDir. Completion is
// detected by watching destDir, not by Fetch returning. The returned
// channel receives the downloader's exit result once; a nil channel
// means the exit is not observable.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (<-chan error, error)
}
