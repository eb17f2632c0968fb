package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Summarizer turns extracted text into mode-shaped summary content
// with a chunked map-reduce over a Generator.
type Summarizer interface {
	Summarize(ctx context.Context, rawText, title string, mode models.Mode) (models.SummaryContent, error)
}

// Generator sends a single prompt to a language model and returns its reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
