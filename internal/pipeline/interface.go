package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Processor runs one input through resolve, extract, summarize and write
type Processor interface {
	// Run blocks until the run is done. Failures are returned as *StageError.
	Run(ctx context.Context, input string, mode models.Mode) (*models.RunResult, error)
	// Process runs a watched inbox file in the configured watch mode and
	// archives it afterwards.
	Process(ctx context.Context, path string) error
}
