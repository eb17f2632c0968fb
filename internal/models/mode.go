package models

import (
	"fmt"
	"strings"
)

// Mode is the requested output shape of a run
type Mode string

const (
	ModeTranscript Mode = "transcript"
	ModeNote       Mode = "note"
	ModeSummary    Mode = "summary"
	ModeOutline    Mode = "outline"
	ModeStudy      Mode = "study"
)

// Layout selects how a mode's document body is rendered
type Layout int

const (
	// LayoutTranscript emits only the transcript and is never summarized.
	LayoutTranscript Layout = iota
	// LayoutStructured emits Summary and Key Takeaways sections.
	LayoutStructured
	// LayoutFreeform emits the combined model output verbatim.
	LayoutFreeform
)

// ModeSpec carries everything a mode variant decides: its combine
// instruction and its rendering rule.
type ModeSpec struct {
	Mode              Mode
	Instruction       string
	Layout            Layout
	IncludeTranscript bool
}

var modeSpecs = map[Mode]ModeSpec{
	ModeTranscript: {
		Mode:   ModeTranscript,
		Layout: LayoutTranscript,
	},
	ModeNote: {
		Mode: ModeNote,
		Instruction: "You are creating study notes from summarized content. Return two sections:\n" +
			"Summary: a concise paragraph.\n" +
			"Key Takeaways: 3-7 bullet points.\n",
		Layout:            LayoutStructured,
		IncludeTranscript: true,
	},
	ModeSummary: {
		Mode: ModeSummary,
		Instruction: "Provide a concise summary paragraph and 3-7 bullet key takeaways.\n" +
			"Return in the format:\nSummary: ...\nKey Takeaways:\n- ...\n",
		Layout: LayoutStructured,
	},
	ModeOutline: {
		Mode: ModeOutline,
		Instruction: "Create a hierarchical outline with headings and nested bullets.\n" +
			"Use Markdown headings and bullets.\n",
		Layout: LayoutFreeform,
	},
	ModeStudy: {
		Mode: ModeStudy,
		Instruction: "Create study notes with headings for Key Points, Definitions, and Examples (if any).\n" +
			"Use Markdown headings and bullet points.\n",
		Layout: LayoutFreeform,
	},
}

// Modes lists every mode in command order
var Modes = []Mode{ModeTranscript, ModeNote, ModeSummary, ModeOutline, ModeStudy}

// ParseMode converts user input into a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modeSpecs[m]; !ok {
		return "", fmt.Errorf("unsupported mode %q", s)
	}
	return m, nil
}

// Spec returns the variant description. Unknown modes fall back to transcript.
func (m Mode) Spec() ModeSpec {
	if spec, ok := modeSpecs[m]; ok {
		return spec
	}
	return modeSpecs[ModeTranscript]
}

// Summarized reports whether the mode ever asks for a summary
func (m Mode) Summarized() bool {
	return m.Spec().Layout != LayoutTranscript
}

func (m Mode) String() string { return string(m) }
