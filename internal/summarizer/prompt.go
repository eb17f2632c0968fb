package summarizer

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/models"
)

const chunkPrompt = `Summarize the following transcript chunk in 3-5 sentences and include 3 bullet takeaways.

Transcript chunk:
%s`

const combinePrompt = `You are combining summaries of a single source titled "%s".

%s
Summaries:
%s`

func buildChunkPrompt(chunk string) string {
	return fmt.Sprintf(chunkPrompt, chunk)
}

func buildCombinePrompt(title string, mode models.Mode, summaries []string) string {
	return fmt.Sprintf(combinePrompt, title, mode.Spec().Instruction, strings.Join(summaries, "\n\n"))
}
