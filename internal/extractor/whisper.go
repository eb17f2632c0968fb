package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"github.com/nguyentantai21042004/note-flow/pkg/executor"
)

// WhisperConfig configures the whisper.cpp CLI
type WhisperConfig struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Prompt     string
	Threads    int
}

type whisperTranscriber struct {
	cfg      WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Transcriber that runs whisper.cpp with JSON output
func NewWhisper(cfg WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	if cfg.Threads <= 0 {
		cfg.Threads = 8
	}
	if cfg.Language == "" {
		cfg.Language = "auto"
	}
	return &whisperTranscriber{cfg: cfg, executor: exec, logger: log}
}

type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, audioPath, workDir string) (Transcript, error) {
	base := filepath.Base(audioPath)
	outputPrefix := filepath.Join(workDir, strings.TrimSuffix(base, filepath.Ext(base)))

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	// -oj: JSON output with per-segment offsets in milliseconds
	// -ml 0 / -mc 0: no segment length or context limit
	// -bo 5: best of 5
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".json")
	if err != nil {
		return Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}
	return parseWhisperJSON(data)
}

func parseWhisperJSON(data []byte) (Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Transcript{}, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]models.Segment, 0, len(out.Transcription))
	texts := make([]string, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		segments = append(segments, models.Segment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  text,
		})
		if text != "" {
			texts = append(texts, text)
		}
	}

	return Transcript{
		Text:     strings.Join(texts, "\n"),
		Segments: segments,
	}, nil
}
