package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/pkg/executor"
)

type ffmpegPreparer struct {
	executor executor.Executor
	binary   string
	logger   logger.Logger
}

// NewFFmpeg creates an AudioPreparer that uses ffmpeg
func NewFFmpeg(exec executor.Executor, binary string, log logger.Logger) AudioPreparer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &ffmpegPreparer{executor: exec, binary: binary, logger: log}
}

// Prepare extracts the audio track and converts it to 16kHz mono WAV,
// the format whisper expects.
func (p *ffmpegPreparer) Prepare(ctx context.Context, inputPath, workDir string) (string, error) {
	base := filepath.Base(inputPath)
	audioPath := filepath.Join(workDir, strings.TrimSuffix(base, filepath.Ext(base))+".normalized.wav")

	p.logger.Info(ctx, "Normalizing audio: %s", inputPath)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize audio: %w", err)
	}

	p.logger.Debug(ctx, "Audio normalized: %s", audioPath)
	return audioPath, nil
}
