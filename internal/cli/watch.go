package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process files dropped into the inbox folder",
		Long:  "Watch paths.inbox and run every new supported file in watch.mode, then move it to paths.archived. Ctrl+C stops after in-flight files finish.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := deps.App.Config
			w, err := deps.App.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			deps.Formatter.Info(fmt.Sprintf("Watching %s (mode %s, max concurrent %d). Press Ctrl+C to stop.",
				cfg.Paths.Inbox, cfg.Watch.Mode, cfg.Performance.MaxConcurrent))

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			deps.Formatter.Info("Watcher stopped")
			return nil
		},
	}
}
