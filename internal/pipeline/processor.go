package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/models"
	"github.com/nguyentantai21042004/note-flow/internal/output"
	"github.com/nguyentantai21042004/note-flow/internal/render"
)

// Run resolves the input, extracts its text, optionally summarizes it and
// writes the artifacts. A summarization failure does not fail the run; it
// is reported in RunResult.SummaryErr and the note is written degraded.
func (p *implProcessor) Run(ctx context.Context, input string, mode models.Mode) (*models.RunResult, error) {
	startTime := time.Now()
	result := &models.RunResult{RunID: uuid.NewString(), Mode: mode}
	ctx = logger.WithRunID(ctx, result.RunID)

	if _, err := models.ParseMode(string(mode)); err != nil {
		return nil, failed(StageResolving, apperr.New(apperr.KindValidation, "", "", err))
	}

	p.logger.Info(ctx, "Starting %s run: %s", mode, input)

	// Step 1: Resolve input to a local file
	stageCtx := p.enter(ctx, StageResolving)
	media, err := p.resolver.Resolve(stageCtx, input)
	if err != nil {
		p.logger.Error(stageCtx, "Resolve failed: %v", err)
		return nil, failed(StageResolving, err)
	}
	result.Media = media

	// Step 2: Transcribe media or read document text
	stageCtx = p.enter(ctx, StageExtracting)
	ingest, err := p.extractor.Extract(stageCtx, media)
	if err != nil {
		p.logger.Error(stageCtx, "Extract failed: %v", err)
		return nil, failed(StageExtracting, err)
	}
	result.Ingest = ingest

	// Step 3: Summarize, degraded on failure
	if p.cfg.SummaryEnabled && mode.Summarized() && p.summarizer != nil {
		stageCtx = p.enter(ctx, StageSummarizing)
		content, err := p.summarizer.Summarize(stageCtx, ingest.RawText, ingest.Metadata.Title, mode)
		if err != nil {
			p.logger.Warn(stageCtx, "Summarization failed, writing without summary: %v", err)
			result.SummaryErr = err
		} else {
			result.Summary = &content
		}
	}

	// Step 4: Write artifacts
	stageCtx = p.enter(ctx, StageWriting)
	req := output.WriteRequest{
		Title:          ingest.Metadata.Title,
		TranscriptText: render.TranscriptText(ingest),
		Segments:       ingest.Segments,
		Mode:           mode,
	}
	if mode.Summarized() {
		req.Markdown = render.Markdown(ingest, mode, result.Summary)
	}
	paths, err := p.writer.Write(stageCtx, req)
	if err != nil {
		p.logger.Error(stageCtx, "Write failed: %v", err)
		return nil, failed(StageWriting, err)
	}
	result.Paths = paths
	result.Elapsed = time.Since(startTime)

	p.enter(ctx, StageDone)
	p.logger.Info(ctx, "Run completed in %s: transcript %s", result.Elapsed, paths.TranscriptPath)
	if paths.MarkdownPath != "" {
		p.logger.Info(ctx, "Note: %s", paths.MarkdownPath)
	}

	return result, nil
}

func (p *implProcessor) enter(ctx context.Context, stage Stage) context.Context {
	ctx = logger.WithStage(ctx, stage.String())
	p.logger.Debug(ctx, "Entering stage %s", stage)
	if p.cfg.OnStage != nil {
		p.cfg.OnStage(ctx, stage)
	}
	return ctx
}
