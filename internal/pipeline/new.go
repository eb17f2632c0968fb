package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/note-flow/internal/extractor"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"github.com/nguyentantai21042004/note-flow/internal/output"
	"github.com/nguyentantai21042004/note-flow/internal/resolver"
	"github.com/nguyentantai21042004/note-flow/internal/summarizer"
)

type Config struct {
	SummaryEnabled bool
	// WatchMode is the mode used for files picked up by Process.
	WatchMode models.Mode
	// ArchiveDir receives inbox files after Process finished them.
	ArchiveDir string
	// OnStage is called as each stage starts. Optional.
	OnStage func(ctx context.Context, stage Stage)
}

type implProcessor struct {
	cfg        Config
	resolver   resolver.Resolver
	extractor  extractor.Extractor
	summarizer summarizer.Summarizer
	writer     output.Writer
	logger     logger.Logger
}

// New creates a Processor. summ may be nil when summarization is disabled.
func New(cfg Config, res resolver.Resolver, ext extractor.Extractor, summ summarizer.Summarizer, w output.Writer, log logger.Logger) Processor {
	if cfg.WatchMode == "" {
		cfg.WatchMode = models.ModeTranscript
	}
	return &implProcessor{
		cfg:        cfg,
		resolver:   res,
		extractor:  ext,
		summarizer: summ,
		writer:     w,
		logger:     log,
	}
}
