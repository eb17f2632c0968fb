package extractor

import (
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
)

type Config struct {
	// TempDir is where per-run work directories are created.
	TempDir string
	// Now stamps the ingest date. Defaults to time.Now.
	Now func() time.Time
}

type implExtractor struct {
	cfg         Config
	audio       AudioPreparer
	transcriber Transcriber
	documents   DocumentReader
	logger      logger.Logger
}

// New creates an Extractor from its media and document collaborators
func New(cfg Config, audio AudioPreparer, transcriber Transcriber, documents DocumentReader, log logger.Logger) Extractor {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &implExtractor{
		cfg:         cfg,
		audio:       audio,
		transcriber: transcriber,
		documents:   documents,
		logger:      log,
	}
}
