package output

import (
	"context"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Writer materializes a run's artifacts into the output directory under a
// fresh, collision-free stem.
type Writer interface {
	Write(ctx context.Context, req WriteRequest) (models.OutputPaths, error)
}

// WriteRequest is everything a run hands to the writer.
// Markdown is ignored in transcript mode.
type WriteRequest struct {
	Title          string
	TranscriptText string
	Segments       []models.Segment
	Markdown       string
	Mode           models.Mode
}
