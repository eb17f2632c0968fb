package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
)

const (
	DefaultChunkSize      = 4000
	DefaultRequestTimeout = 3 * time.Minute
)

type Config struct {
	// ChunkSize is the chunk length in characters.
	ChunkSize int
	// MaxParallel bounds concurrent chunk calls. 1 is sequential.
	MaxParallel int
	// RequestTimeout bounds every single generator call.
	RequestTimeout time.Duration
}

type implSummarizer struct {
	cfg       Config
	generator Generator
	logger    logger.Logger
}

// New creates a Summarizer backed by the given Generator
func New(cfg Config, gen Generator, log logger.Logger) Summarizer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &implSummarizer{
		cfg:       cfg,
		generator: gen,
		logger:    log,
	}
}
