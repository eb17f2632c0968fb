package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/note-flow/internal/app"
	"github.com/nguyentantai21042004/note-flow/internal/config"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"github.com/nguyentantai21042004/note-flow/internal/version"
)

// Dependencies is filled in before any subcommand runs. Tests may preset
// App to skip loading configuration.
type Dependencies struct {
	ConfigPath string
	Out        io.Writer
	Formatter  *Formatter
	App        *app.App
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Formatter == nil {
		deps.Formatter = NewFormatter(deps.Out)
	}

	rootCmd := &cobra.Command{
		Use:           "note-flow",
		Short:         "Turn media and documents into transcripts and notes",
		Long:          "Resolve a local file or URL, transcribe or read it, optionally summarize it with a language model, and write transcript and note files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.load()
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.SetOut(deps.Out)
	rootCmd.PersistentFlags().StringVar(&deps.ConfigPath, "config", "config.yaml", "path to the YAML config file")

	for _, mode := range models.Modes {
		rootCmd.AddCommand(NewModeCmd(deps, mode))
	}
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}

func (d *Dependencies) load() error {
	if d.App != nil {
		return nil
	}

	cfg, err := config.Load(d.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	a, err := app.New(cfg, log, app.Options{OnStage: d.Formatter.Stage})
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	d.App = a
	return nil
}
