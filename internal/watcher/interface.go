package watcher

import "context"

// Watcher monitors the inbox directory for new input files
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created inbox file
type EventHandler func(ctx context.Context, filePath string) error
