package extractor

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Extract transcribes media or reads document text. Any failure is an ingestion error.
func (e *implExtractor) Extract(ctx context.Context, media models.ResolvedMedia) (models.IngestResult, error) {
	var (
		rawText  string
		segments []models.Segment
		err      error
	)

	if media.IsDocument {
		e.logger.Info(ctx, "Extracting document text: %s", media.Path)
		rawText, err = e.documents.ReadText(ctx, media.Path)
		if err != nil {
			return models.IngestResult{}, apperr.New(apperr.KindIngestion, "read document", media.Path, err)
		}
		rawText = strings.TrimSpace(rawText)
	} else {
		rawText, segments, err = e.transcribe(ctx, media)
		if err != nil {
			return models.IngestResult{}, err
		}
	}

	return models.IngestResult{
		RawText:  rawText,
		Segments: segments,
		Metadata: models.Metadata{
			Title:           media.Title,
			SourceType:      media.SourceType,
			SourceURL:       media.SourceURL,
			DurationSeconds: media.DurationSeconds,
			HasDuration:     media.HasDuration,
			Date:            e.cfg.Now().Format("2006-01-02"),
		},
	}, nil
}

func (e *implExtractor) transcribe(ctx context.Context, media models.ResolvedMedia) (string, []models.Segment, error) {
	if e.cfg.TempDir != "" {
		if err := os.MkdirAll(e.cfg.TempDir, 0755); err != nil {
			return "", nil, apperr.New(apperr.KindIO, "create temp dir", e.cfg.TempDir, err)
		}
	}
	workDir, err := os.MkdirTemp(e.cfg.TempDir, "note-flow-*")
	if err != nil {
		return "", nil, apperr.New(apperr.KindIngestion, "create work dir in", e.cfg.TempDir, err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			e.logger.Warn(ctx, "Failed to cleanup work dir %s: %v", workDir, err)
		}
	}()

	audioPath, err := e.audio.Prepare(ctx, media.Path, workDir)
	if err != nil {
		return "", nil, apperr.New(apperr.KindIngestion, "prepare audio", media.Path, err)
	}

	tr, err := e.transcriber.Transcribe(ctx, audioPath, workDir)
	if err != nil {
		return "", nil, apperr.New(apperr.KindIngestion, "transcribe", media.Path, err)
	}

	segments := normalizeSegments(tr.Segments)
	rawText := joinSegments(segments)
	if rawText == "" {
		rawText = strings.TrimSpace(tr.Text)
	}

	e.logger.Info(ctx, "Transcribed %s: %d segments, %d characters", media.Path, len(segments), len(rawText))
	return rawText, segments, nil
}

// normalizeSegments trims text, drops empty segments and orders by start time
func normalizeSegments(in []models.Segment) []models.Segment {
	out := make([]models.Segment, 0, len(in))
	for _, s := range in {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if s.End < s.Start {
			s.End = s.Start
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func joinSegments(segments []models.Segment) string {
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
