package resolver

import (
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
)

// Config holds the resolver's limits and download settings
type Config struct {
	DownloadDir  string
	MaxDuration  time.Duration // zero disables the check
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type implResolver struct {
	cfg     Config
	prober  Prober
	fetcher Fetcher
	logger  logger.Logger
}

// New creates a Resolver backed by the given probe and fetch collaborators
func New(cfg Config, prober Prober, fetcher Fetcher, log logger.Logger) Resolver {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 10 * time.Minute
	}
	return &implResolver{
		cfg:     cfg,
		prober:  prober,
		fetcher: fetcher,
		logger:  log,
	}
}
