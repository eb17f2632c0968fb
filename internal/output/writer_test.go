package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/logger"
	"github.com/nguyentantai21042004/note-flow/internal/models"
)

func fixedNow() time.Time { return time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC) }

func newTestWriter(dir string, datePrefix bool) Writer {
	return New(Config{Dir: dir, DatePrefix: datePrefix, Now: fixedNow}, logger.NewNop())
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Weekly Sync", "Weekly Sync"},
		{`a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"  lots   of\tspace\n", "lots of space"},
		{"tab\x00null", "tab null"},
		{"", "untitled"},
		{`///`, "untitled"},
		{"Tiếng Việt", "Tiếng Việt"},
	}
	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteTranscriptMode(t *testing.T) {
	dir := t.TempDir()
	w := newTestWriter(dir, true)

	segments := []models.Segment{{Start: 0, End: 1.5, Text: "hi"}, {Start: 2, End: 3, Text: "there"}}
	paths, err := w.Write(context.Background(), WriteRequest{
		Title:          "Talk: Part 1",
		TranscriptText: "[00:00:00] hi\n[00:00:02] there",
		Segments:       segments,
		Markdown:       "# ignored",
		Mode:           models.ModeTranscript,
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	wantTxt := filepath.Join(dir, "2026-03-04 - Talk Part 1.txt")
	if paths.TranscriptPath != wantTxt {
		t.Errorf("TranscriptPath = %q, want %q", paths.TranscriptPath, wantTxt)
	}
	if paths.TranscriptSidecarPath != filepath.Join(dir, "2026-03-04 - Talk Part 1.transcript.json") {
		t.Errorf("TranscriptSidecarPath = %q", paths.TranscriptSidecarPath)
	}
	if paths.MarkdownPath != "" || paths.DocxPath != "" {
		t.Errorf("transcript mode should not write markdown: %+v", paths)
	}

	got, err := ReadSidecar(paths.TranscriptSidecarPath)
	if err != nil {
		t.Fatalf("ReadSidecar() error = %v", err)
	}
	if !reflect.DeepEqual(got, segments) {
		t.Errorf("ReadSidecar() = %+v, want %+v", got, segments)
	}

	data, _ := os.ReadFile(paths.TranscriptPath)
	if string(data) != "[00:00:00] hi\n[00:00:02] there" {
		t.Errorf("transcript = %q", data)
	}
}

func TestWriteEmptySidecar(t *testing.T) {
	w := newTestWriter(t.TempDir(), false)
	paths, err := w.Write(context.Background(), WriteRequest{Title: "doc", TranscriptText: "text", Mode: models.ModeTranscript})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, _ := os.ReadFile(paths.TranscriptSidecarPath)
	if string(data) != "[]\n" {
		t.Errorf("sidecar = %q, want []", data)
	}
	if filepath.Base(paths.TranscriptPath) != "doc.txt" {
		t.Errorf("TranscriptPath = %q, want no date prefix", paths.TranscriptPath)
	}
}

func TestWriteCollisions(t *testing.T) {
	dir := t.TempDir()
	w := newTestWriter(dir, false)
	req := WriteRequest{Title: "Same", TranscriptText: "t", Markdown: "# Same\n", Mode: models.ModeSummary}

	var stems []string
	for range 3 {
		paths, err := w.Write(context.Background(), req)
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		stems = append(stems, filepath.Base(paths.MarkdownPath))
	}

	want := []string{"Same.md", "Same (1).md", "Same (2).md"}
	if !reflect.DeepEqual(stems, want) {
		t.Errorf("markdown names = %v, want %v", stems, want)
	}
}

func TestWriteCounterNotReused(t *testing.T) {
	dir := t.TempDir()
	w := newTestWriter(dir, false)
	req := WriteRequest{Title: "Reuse", TranscriptText: "t", Mode: models.ModeTranscript}

	first, err := w.Write(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Write(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{second.TranscriptPath, second.TranscriptSidecarPath} {
		if err := os.Remove(p); err != nil {
			t.Fatal(err)
		}
	}

	third, err := w.Write(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(first.TranscriptPath) != "Reuse.txt" || filepath.Base(third.TranscriptPath) != "Reuse (2).txt" {
		t.Errorf("got %q then %q, want counter 2 after deleting (1)", first.TranscriptPath, third.TranscriptPath)
	}
}

func TestWriteSkipsStemWithAnyArtifact(t *testing.T) {
	dir := t.TempDir()
	// only a stray markdown file exists for the plain stem
	if err := os.WriteFile(filepath.Join(dir, "Stray.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := newTestWriter(dir, false).Write(context.Background(), WriteRequest{Title: "Stray", Mode: models.ModeTranscript})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(paths.TranscriptPath) != "Stray (1).txt" {
		t.Errorf("TranscriptPath = %q, want Stray (1).txt", paths.TranscriptPath)
	}
}

func TestWriteConcurrent(t *testing.T) {
	dir := t.TempDir()
	req := WriteRequest{Title: "Race", TranscriptText: "t", Mode: models.ModeTranscript}

	const n = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		names = make(map[string]bool)
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// separate writers share the directory lock
			paths, err := newTestWriter(dir, false).Write(context.Background(), req)
			if err != nil {
				t.Errorf("Write() error = %v", err)
				return
			}
			mu.Lock()
			names[paths.TranscriptPath] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(names) != n {
		t.Errorf("got %d distinct names, want %d", len(names), n)
	}
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	w := New(Config{Dir: dir, Docx: true, Now: fixedNow}, logger.NewNop())

	paths, err := w.Write(context.Background(), WriteRequest{
		Title:    "Notes",
		Markdown: "---\ntitle: Notes\n---\n\n# Notes\n\n## Summary\nok\n",
		Mode:     models.ModeNote,
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if paths.DocxPath != filepath.Join(dir, "Notes.docx") {
		t.Errorf("DocxPath = %q", paths.DocxPath)
	}
	if info, err := os.Stat(paths.DocxPath); err != nil || info.Size() == 0 {
		t.Errorf("docx not written: %v", err)
	}
}

func TestWriteIOError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWriter(filepath.Join(blocker, "sub"), false)
	_, err := w.Write(context.Background(), WriteRequest{Title: "x", Mode: models.ModeTranscript})
	if !apperr.Is(err, apperr.KindIO) {
		t.Errorf("Write() error = %v, want io", err)
	}
}

func TestReadSidecarErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadSidecar(filepath.Join(dir, "missing.json")); !apperr.Is(err, apperr.KindIO) {
		t.Errorf("ReadSidecar(missing) error = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := ReadSidecar(bad); !apperr.Is(err, apperr.KindIO) {
		t.Errorf("ReadSidecar(bad) error = %v", err)
	}
}

func TestSanitizeTitleLength(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"ascii", strings.Repeat("a", 400)},
		{"multi-byte", strings.Repeat("Tiếng Việt ", 40)},
		{"emoji", strings.Repeat("🎙", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.in)
			if len(got) > maxTitleBytes {
				t.Errorf("len = %d, want at most %d", len(got), maxTitleBytes)
			}
			if !utf8.ValidString(got) {
				t.Errorf("SanitizeTitle() split a rune: %q", got)
			}
			if strings.HasSuffix(got, " ") {
				t.Errorf("SanitizeTitle() left a trailing space: %q", got)
			}
		})
	}
}

func TestWriteLongTitle(t *testing.T) {
	dir := t.TempDir()
	w := New(Config{Dir: dir, DatePrefix: true, Docx: true, Now: fixedNow}, logger.NewNop())

	title := strings.Repeat("Tiếng Việt ", 30)
	req := WriteRequest{
		Title:          title,
		TranscriptText: "x",
		Markdown:       "# " + title + "\n",
		Mode:           models.ModeNote,
	}
	// a second write needs the " (1)" suffix to fit as well
	for i := 0; i < 2; i++ {
		paths, err := w.Write(context.Background(), req)
		if err != nil {
			t.Fatalf("Write() #%d error = %v", i, err)
		}
		for _, p := range []string{paths.TranscriptPath, paths.TranscriptSidecarPath, paths.MarkdownPath, paths.DocxPath} {
			if n := len(filepath.Base(p)); n > 255 {
				t.Errorf("%s is %d bytes long", filepath.Base(p), n)
			}
		}
	}
}

func TestWriteFailureRemovesUnwrittenFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(Config{Dir: dir, Docx: true, Now: fixedNow}, logger.NewNop())
	w.(*implWriter).docx = func(title, markdown, path string) error {
		return errors.New("disk full")
	}

	_, err := w.Write(context.Background(), WriteRequest{Title: "Notes", Markdown: "# Notes\n", Mode: models.ModeNote})
	if !apperr.Is(err, apperr.KindIO) {
		t.Fatalf("Write() error = %v, want io", err)
	}
	if !strings.Contains(err.Error(), "already written") {
		t.Errorf("Write() error = %v, want the written files listed", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Notes.docx")); !os.IsNotExist(err) {
		t.Errorf("Notes.docx left behind: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Notes.md")); err != nil {
		t.Errorf("Notes.md should be kept: %v", err)
	}
}

func TestDiscardRemovesReservedFiles(t *testing.T) {
	dir := t.TempDir()
	files, err := createExclusive(dir, "Notes", []string{extTranscript, extSidecar, extMarkdown})
	if err != nil {
		t.Fatalf("createExclusive() error = %v", err)
	}

	discard(files)

	free, err := stemFree(dir, "Notes")
	if err != nil || !free {
		t.Errorf("stemFree() = %v, %v, want the stem released", free, err)
	}
}

func TestWriteDocxGetsOriginalTitle(t *testing.T) {
	dir := t.TempDir()
	w := New(Config{Dir: dir, Docx: true, Now: fixedNow}, logger.NewNop())
	var got string
	w.(*implWriter).docx = func(title, markdown, path string) error {
		got = title
		return os.WriteFile(path, []byte("docx"), 0644)
	}

	paths, err := w.Write(context.Background(), WriteRequest{Title: "Talk: Part 1", Markdown: "# Talk: Part 1\n", Mode: models.ModeNote})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got != "Talk: Part 1" {
		t.Errorf("docx title = %q, want %q", got, "Talk: Part 1")
	}
	if filepath.Base(paths.DocxPath) != "Talk Part 1.docx" {
		t.Errorf("DocxPath = %q", paths.DocxPath)
	}
}
