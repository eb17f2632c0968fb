// Package render turns ingest and summary results into transcript text,
// markdown notes and Word documents.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

const (
	unavailable  = "Summary unavailable."
	noTakeaways  = "No key takeaways."
	defaultTitle = "Untitled"
)

// FormatTimestamp formats seconds as zero-padded HH:MM:SS
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// TranscriptText renders one "[HH:MM:SS] text" line per segment, or the raw
// text when there are no segments.
func TranscriptText(ingest models.IngestResult) string {
	lines := make([]string, 0, len(ingest.Segments))
	for _, s := range ingest.Segments {
		lines = append(lines, fmt.Sprintf("[%s] %s", FormatTimestamp(s.Start), s.Text))
	}
	if text := strings.TrimSpace(strings.Join(lines, "\n")); text != "" {
		return text
	}
	return ingest.RawText
}

// Markdown renders the note document for a mode. summary may be nil when
// summarization was skipped or failed.
func Markdown(ingest models.IngestResult, mode models.Mode, summary *models.SummaryContent) string {
	spec := mode.Spec()
	title := ingest.Metadata.Title
	if title == "" {
		title = defaultTitle
	}
	transcript := TranscriptText(ingest)

	lines := []string{frontMatter(ingest.Metadata, title, mode), "", "# " + title, ""}

	switch spec.Layout {
	case models.LayoutTranscript:
		lines = append(lines, transcript)

	case models.LayoutStructured:
		var s models.SummaryContent
		if summary != nil {
			s = *summary
		}
		summaryText := s.Summary
		if summaryText == "" {
			summaryText = unavailable
		}
		lines = append(lines,
			"## Summary",
			summaryText,
			"",
			"## Key Takeaways",
			takeaways(s),
		)
		if spec.IncludeTranscript {
			lines = append(lines,
				"",
				"## Transcript",
				"<details>",
				"<summary>Show transcript</summary>",
				"",
				transcript,
				"",
				"</details>",
			)
		}

	default:
		body := unavailable
		if summary != nil && strings.TrimSpace(summary.Body) != "" {
			body = strings.TrimSpace(summary.Body)
		}
		lines = append(lines, body)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func frontMatter(meta models.Metadata, title string, mode models.Mode) string {
	source := string(meta.SourceType)
	if source == "" {
		source = "unknown"
	}
	duration := ""
	if meta.HasDuration {
		duration = FormatTimestamp(meta.DurationSeconds)
	}

	// free-text values are double quoted; Go escapes are valid YAML escapes
	return strings.Join([]string{
		"---",
		"title: " + strconv.Quote(title),
		"source: " + source,
		"source_url: " + strconv.Quote(meta.SourceURL),
		"date: " + meta.Date,
		"duration: " + duration,
		"mode: " + mode.String(),
		"---",
	}, "\n")
}

func takeaways(s models.SummaryContent) string {
	if len(s.KeyTakeaways) == 0 {
		if s.Summary == "" {
			return unavailable
		}
		return noTakeaways
	}
	items := make([]string, 0, len(s.KeyTakeaways))
	for _, t := range s.KeyTakeaways {
		items = append(items, "- "+t)
	}
	return strings.Join(items, "\n")
}
