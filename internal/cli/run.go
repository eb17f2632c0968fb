package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

var modeShort = map[models.Mode]string{
	models.ModeTranscript: "Write a timestamped transcript",
	models.ModeNote:       "Write a note with summary, takeaways and the transcript",
	models.ModeSummary:    "Write a summary with key takeaways",
	models.ModeOutline:    "Write a hierarchical outline",
	models.ModeStudy:      "Write study notes with key points, definitions and examples",
}

// NewModeCmd runs the pipeline once in mode. Arguments are joined with
// spaces so unquoted paths with spaces still work.
func NewModeCmd(deps *Dependencies, mode models.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <file-or-url>", mode),
		Short: modeShort[mode],
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			input := strings.Join(args, " ")
			result, err := deps.App.Processor.Run(ctx, input, mode)
			if err != nil {
				return err
			}

			deps.Formatter.RunComplete(result, deps.App.Config.Summary.Enabled)
			return nil
		},
	}
}
