package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"golang.org/x/sync/errgroup"
)

// Summarize runs one generator call per chunk, then a single combine call
// shaped by the mode. Any failed call fails the whole summary.
func (s *implSummarizer) Summarize(ctx context.Context, rawText, title string, mode models.Mode) (models.SummaryContent, error) {
	spec := mode.Spec()
	if spec.Layout == models.LayoutTranscript {
		return models.SummaryContent{}, apperr.Errorf(apperr.KindValidation, "summarize", "mode %q does not summarize", mode)
	}

	chunks := Chunk(rawText, s.cfg.ChunkSize)
	if len(chunks) == 0 {
		s.logger.Info(ctx, "Nothing to summarize for %q", title)
		return models.SummaryContent{}, nil
	}

	s.logger.Info(ctx, "Summarizing %q: %d chunks, parallel %d", title, len(chunks), s.cfg.MaxParallel)

	summaries, err := s.summarizeChunks(ctx, chunks)
	if err != nil {
		return models.SummaryContent{}, err
	}

	combined, err := s.generate(ctx, buildCombinePrompt(title, mode, summaries))
	if err != nil {
		return models.SummaryContent{}, apperr.New(apperr.KindGeneration, "combine summaries", "", err)
	}

	if spec.Layout == models.LayoutStructured {
		return ParseSummary(combined), nil
	}
	return models.SummaryContent{Body: strings.TrimSpace(combined)}, nil
}

func (s *implSummarizer) summarizeChunks(ctx context.Context, chunks []string) ([]string, error) {
	summaries := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxParallel)

	for i, chunk := range chunks {
		g.Go(func() error {
			out, err := s.generate(gctx, buildChunkPrompt(chunk))
			if err != nil {
				return apperr.New(apperr.KindGeneration, fmt.Sprintf("summarize chunk %d/%d", i+1, len(chunks)), "", err)
			}
			s.logger.Debug(gctx, "Chunk %d/%d summarized", i+1, len(chunks))
			summaries[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *implSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()
	return s.generator.Generate(ctx, prompt)
}
