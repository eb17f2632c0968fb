package summarizer

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want int
	}{
		{"empty", "", 4000, 0},
		{"shorter than size", "hello", 4000, 1},
		{"exact multiple", strings.Repeat("a", 8000), 4000, 2},
		{"remainder", strings.Repeat("a", 8001), 4000, 3},
		{"multibyte", strings.Repeat("é", 10), 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.size)
			if len(chunks) != tt.want {
				t.Fatalf("Chunk() returned %d chunks, want %d", len(chunks), tt.want)
			}
			if got := strings.Join(chunks, ""); got != tt.text {
				t.Errorf("joined chunks differ from input")
			}
			for i, c := range chunks {
				if !utf8.ValidString(c) {
					t.Errorf("chunk %d is not valid UTF-8", i)
				}
				if n := utf8.RuneCountInString(c); n > tt.size {
					t.Errorf("chunk %d has %d runes, max %d", i, n, tt.size)
				}
			}
		})
	}
}

func TestChunkEmptyIsNil(t *testing.T) {
	if Chunk("", 10) != nil {
		t.Error("Chunk(\"\") should be nil")
	}
}
