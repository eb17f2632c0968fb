package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"github.com/nguyentantai21042004/note-flow/internal/pipeline"
)

// Formatter prints human-readable progress and results
type Formatter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) printf(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.w, format, args...)
}

// Stage reports pipeline progress. It matches pipeline.Config.OnStage.
func (f *Formatter) Stage(ctx context.Context, stage pipeline.Stage) {
	switch stage {
	case pipeline.StageResolving:
		f.printf("🔎 Resolving input...\n")
	case pipeline.StageExtracting:
		f.printf("📝 Extracting content...\n")
	case pipeline.StageSummarizing:
		f.printf("🤖 Summarizing...\n")
	case pipeline.StageWriting:
		f.printf("💾 Writing output files...\n")
	}
}

// RunComplete prints the saved paths and any summary notice
func (f *Formatter) RunComplete(result *models.RunResult, summaryEnabled bool) {
	if result.SummaryErr != nil {
		f.Warning(fmt.Sprintf("Summarization failed: %v", result.SummaryErr))
	} else if result.Mode.Summarized() && !summaryEnabled {
		f.Info("Summarization is disabled; the note was written without a summary")
	}

	f.printf("✅ Saved transcript: %s\n", result.Paths.TranscriptPath)
	f.printf("✅ Saved segments: %s\n", result.Paths.TranscriptSidecarPath)
	if result.Paths.MarkdownPath != "" {
		f.printf("✅ Saved note: %s\n", result.Paths.MarkdownPath)
	}
	if result.Paths.DocxPath != "" {
		f.printf("✅ Saved document: %s\n", result.Paths.DocxPath)
	}
	f.printf("⏱️  Done in %s\n", formatDuration(result.Elapsed))
}

func (f *Formatter) Error(msg string) {
	f.printf("❌ %s\n", msg)
}

// Failure prints a fatal error and the file it concerns, if any
func (f *Formatter) Failure(err error) {
	f.Error(err.Error())
	if path := apperr.PathOf(err); path != "" {
		f.printf("   📄 %s\n", path)
	}
}

func (f *Formatter) Info(msg string) {
	f.printf("ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	f.printf("✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	f.printf("⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		f.printf("  ✅ %s: %s\n", name, detail)
	} else {
		f.printf("  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
