package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
)

func TestWatcherDispatchesAcceptedFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox")

	var (
		mu      sync.Mutex
		handled []string
		running int32
		peak    int32
	)
	done := make(chan struct{}, 8)
	handler := func(ctx context.Context, path string) error {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&running, -1)

		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(Config{
		InboxDir:      dir,
		MaxConcurrent: 1,
		SettleDelay:   10 * time.Millisecond,
		Accept:        func(p string) bool { return strings.HasSuffix(p, ".wav") },
	}, handler, logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// give the event loop a moment to start reading
	time.Sleep(20 * time.Millisecond)
	for _, name := range []string{"a.wav", "notes.xlsx", "b.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for range 2 {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for handler")
		}
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 2 {
		t.Errorf("handled = %v, want a.wav and b.wav", handled)
	}
	for _, h := range handled {
		if h == "notes.xlsx" {
			t.Error("unsupported file should be ignored")
		}
	}
	if peak > 1 {
		t.Errorf("peak concurrency = %d, want 1", peak)
	}
}

func TestNewCreatesInbox(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	w, err := New(Config{InboxDir: dir}, func(context.Context, string) error { return nil }, logger.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("inbox dir not created: %v", err)
	}
}
