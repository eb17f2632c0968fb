package watcher

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
)

// DefaultSettleDelay is how long a new file is left alone before processing,
// so writers can finish copying it in.
const DefaultSettleDelay = 500 * time.Millisecond

type Config struct {
	InboxDir      string
	MaxConcurrent int
	SettleDelay   time.Duration
	// Accept filters which files are handed to the handler.
	Accept func(path string) bool
}

// New creates a Watcher with concurrency control over cfg.InboxDir
func New(cfg Config, handler EventHandler, log logger.Logger) (Watcher, error) {
	if err := os.MkdirAll(cfg.InboxDir, 0755); err != nil {
		return nil, fmt.Errorf("create inbox dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(cfg.InboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 2
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	} else if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Accept == nil {
		cfg.Accept = func(string) bool { return true }
	}

	return &implWatcher{
		cfg:       cfg,
		handler:   handler,
		logger:    log,
		watcher:   watcher,
		semaphore: make(chan struct{}, cfg.MaxConcurrent),
	}, nil
}
