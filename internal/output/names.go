package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

const (
	extTranscript = ".txt"
	extSidecar    = ".transcript.json"
	extMarkdown   = ".md"
	extDocx       = ".docx"

	untitled = "untitled"

	// maxTitleBytes keeps "<date> - <title> (n).transcript.json" under the
	// 255 byte filename limit of common filesystems.
	maxTitleBytes = 200
)

var artifactExts = []string{extTranscript, extSidecar, extMarkdown, extDocx}

// SanitizeTitle strips characters that are illegal in filenames, collapses
// whitespace and truncates to maxTitleBytes on a rune boundary. An empty
// result becomes "untitled".
func SanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		if strings.ContainsRune(`\/:*?"<>|`, r) {
			return -1
		}
		return r
	}, title)

	cleaned = truncateBytes(strings.Join(strings.Fields(cleaned), " "), maxTitleBytes)
	if cleaned == "" {
		return untitled
	}
	return cleaned
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], " ")
}

// dirState serializes stem allocation for one output directory and remembers
// the next counter per base name, so a counter is never handed out twice.
type dirState struct {
	mu   sync.Mutex
	next map[string]int
}

var dirs sync.Map // cleaned dir -> *dirState

func stateFor(dir string) *dirState {
	key := filepath.Clean(dir)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	s, _ := dirs.LoadOrStore(key, &dirState{next: make(map[string]int)})
	return s.(*dirState)
}

func stemFor(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s (%d)", base, n)
}

// stemFree reports whether no artifact of any kind exists for stem
func stemFree(dir, stem string) (bool, error) {
	for _, ext := range artifactExts {
		_, err := os.Lstat(filepath.Join(dir, stem+ext))
		if err == nil {
			return false, nil
		}
		if !os.IsNotExist(err) {
			return false, err
		}
	}
	return true, nil
}
