// Package app wires the pipeline components from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/note-flow/internal/config"
	"github.com/nguyentantai21042004/note-flow/internal/extractor"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"github.com/nguyentantai21042004/note-flow/internal/output"
	"github.com/nguyentantai21042004/note-flow/internal/pipeline"
	"github.com/nguyentantai21042004/note-flow/internal/resolver"
	"github.com/nguyentantai21042004/note-flow/internal/summarizer"
	"github.com/nguyentantai21042004/note-flow/internal/watcher"
	"github.com/nguyentantai21042004/note-flow/pkg/executor"
)

type App struct {
	Config    *config.Config
	Logger    logger.Logger
	Executor  executor.Executor
	Processor pipeline.Processor
}

type Options struct {
	// OnStage is forwarded to the pipeline for progress output.
	OnStage func(ctx context.Context, stage pipeline.Stage)
}

// New builds every component from cfg
func New(cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	exec := executor.New()

	res := resolver.New(resolver.Config{
		DownloadDir:  cfg.Paths.Downloads,
		MaxDuration:  cfg.Media.MaxDuration,
		PollInterval: cfg.Media.PollInterval,
		PollTimeout:  cfg.Media.PollTimeout,
	},
		resolver.NewFFprobe(exec, cfg.Media.FFprobeBinary),
		resolver.NewYtdlp(exec, cfg.Media.YtdlpBinary, cfg.Media.PollTimeout, log),
		log,
	)

	ext := extractor.New(extractor.Config{TempDir: cfg.Paths.Temp},
		extractor.NewFFmpeg(exec, cfg.Media.FFmpegBinary, log),
		extractor.NewWhisper(extractor.WhisperConfig{
			BinaryPath: cfg.Whisper.BinaryPath,
			ModelPath:  cfg.Whisper.ModelPath,
			Language:   cfg.Whisper.Language,
			Prompt:     cfg.Whisper.Prompt,
			Threads:    cfg.Whisper.Threads,
		}, exec, log),
		extractor.NewDocumentReader(exec, cfg.Media.PdftotextBinary),
		log,
	)

	var summ summarizer.Summarizer
	if cfg.Summary.Enabled {
		gen, err := NewGenerator(cfg.Summary, log)
		if err != nil {
			return nil, err
		}
		summ = summarizer.New(summarizer.Config{
			ChunkSize:      cfg.Summary.ChunkSize,
			MaxParallel:    cfg.Summary.MaxParallel,
			RequestTimeout: cfg.Summary.RequestTimeout,
		}, gen, log)
	}

	writer := output.New(output.Config{
		Dir:        cfg.Paths.Output,
		DatePrefix: cfg.DatePrefix(),
		Docx:       cfg.Output.Docx,
	}, log)

	watchMode, err := models.ParseMode(cfg.Watch.Mode)
	if err != nil {
		return nil, fmt.Errorf("watch mode: %w", err)
	}

	proc := pipeline.New(pipeline.Config{
		SummaryEnabled: cfg.Summary.Enabled,
		WatchMode:      watchMode,
		ArchiveDir:     cfg.Paths.Archived,
		OnStage:        opts.OnStage,
	}, res, ext, summ, writer, log)

	return &App{
		Config:    cfg,
		Logger:    log,
		Executor:  exec,
		Processor: proc,
	}, nil
}

// NewGenerator picks the language model backend named by summary.provider
func NewGenerator(cfg config.SummaryConfig, log logger.Logger) (summarizer.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return summarizer.NewOllama(cfg.OllamaURL, cfg.Model, nil), nil
	case config.ProviderGemini:
		if len(cfg.GeminiAPIKeys) == 0 {
			return nil, fmt.Errorf("gemini provider needs at least one API key")
		}
		return summarizer.NewGemini(cfg.GeminiAPIKeys, cfg.Model, log), nil
	default:
		return nil, fmt.Errorf("unsupported summary provider %q", cfg.Provider)
	}
}

// NewWatcher watches paths.inbox and feeds supported files to the processor
func (a *App) NewWatcher() (watcher.Watcher, error) {
	if a.Config.Paths.Inbox == "" {
		return nil, fmt.Errorf("paths.inbox is not configured")
	}
	return watcher.New(watcher.Config{
		InboxDir:      a.Config.Paths.Inbox,
		MaxConcurrent: a.Config.Performance.MaxConcurrent,
		Accept:        resolver.IsSupported,
	}, a.Processor.Process, a.Logger)
}
