package extractor

import (
	"context"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Extractor turns a resolved artifact into raw text and time-coded segments
type Extractor interface {
	Extract(ctx context.Context, media models.ResolvedMedia) (models.IngestResult, error)
}

// AudioPreparer converts any audio/video file into a WAV the transcriber accepts
type AudioPreparer interface {
	Prepare(ctx context.Context, inputPath, workDir string) (string, error)
}

// Transcript is the transcriber output
type Transcript struct {
	Text     string
	Segments []models.Segment
}

// Transcriber is the speech-to-text capability
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, workDir string) (Transcript, error)
}

// DocumentReader extracts plain text from a document file
type DocumentReader interface {
	ReadText(ctx context.Context, path string) (string, error)
}
