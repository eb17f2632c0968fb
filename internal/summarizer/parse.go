package summarizer

import (
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

var (
	reSummary    = regexp.MustCompile(`(?is)summary:\s*(.+?)(?:\n\s*key takeaways:|$)`)
	reTakeaways  = regexp.MustCompile(`(?is)key takeaways:\s*(.+)$`)
	reTakeawayAt = regexp.MustCompile(`(?i)key takeaways:`)
)

// ParseSummary splits a "Summary: ... Key Takeaways: - ..." reply.
// Without a summary label the text before the takeaways label (or the whole
// reply) is the summary. KeyTakeaways stays nil when no bullet is found.
func ParseSummary(response string) models.SummaryContent {
	response = strings.TrimSpace(response)

	var summary string
	if m := reSummary.FindStringSubmatch(response); m != nil {
		summary = strings.TrimSpace(m[1])
	} else if loc := reTakeawayAt.FindStringIndex(response); loc != nil {
		summary = strings.TrimSpace(response[:loc[0]])
	} else {
		summary = response
	}

	var takeaways []string
	if m := reTakeaways.FindStringSubmatch(response); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
				continue
			}
			if item := strings.TrimSpace(strings.TrimLeft(line, "-*")); item != "" {
				takeaways = append(takeaways, item)
			}
		}
	}

	return models.SummaryContent{Summary: summary, KeyTakeaways: takeaways}
}
