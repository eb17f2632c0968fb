package output

import (
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/render"
)

type Config struct {
	Dir        string
	DatePrefix bool
	// Docx also exports the markdown note as a Word document.
	Docx bool
	// Now stamps the date prefix. Defaults to time.Now.
	Now func() time.Time
}

type implWriter struct {
	cfg    Config
	logger logger.Logger
	docx   func(title, markdown, path string) error
}

// New creates a Writer for cfg.Dir
func New(cfg Config, log logger.Logger) Writer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &implWriter{cfg: cfg, logger: log, docx: render.Docx}
}
