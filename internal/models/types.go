package models

import "time"

// SourceType records where the content came from
type SourceType string

const (
	SourceAudio    SourceType = "audio"
	SourceVideo    SourceType = "video"
	SourceDocument SourceType = "document"
	SourceYouTube  SourceType = "youtube"
	SourceWeb      SourceType = "web"
)

// ResolvedMedia is a concrete local artifact produced by the resolver
type ResolvedMedia struct {
	Path            string
	Title           string
	DurationSeconds float64
	HasDuration     bool
	IsVideo         bool
	IsDocument      bool
	SourceType      SourceType
	SourceURL       string
}

// Segment is one time-coded span of a transcript, in seconds
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Metadata struct {
	Title           string
	SourceType      SourceType
	SourceURL       string
	DurationSeconds float64
	HasDuration     bool
	Date            string
}

// IngestResult is the extractor output consumed by summarization and writing
type IngestResult struct {
	RawText  string
	Segments []Segment
	Metadata Metadata
}

// SummaryContent is the mode-dependent summarization result.
// KeyTakeaways is nil when the model output had none.
type SummaryContent struct {
	Summary      string
	KeyTakeaways []string
	Body         string
}

type OutputPaths struct {
	TranscriptPath        string
	TranscriptSidecarPath string
	MarkdownPath          string
	DocxPath              string
}

// RunResult is returned to the caller of a pipeline run.
// SummaryErr is set when summarization failed but the run still completed.
type RunResult struct {
	RunID      string
	Mode       Mode
	Media      ResolvedMedia
	Ingest     IngestResult
	Summary    *SummaryContent
	SummaryErr error
	Paths      OutputPaths
	Elapsed    time.Duration
}
