package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
	"github.com/nguyentantai21042004/note-flow/internal/models"
)

// Write picks a free stem and writes <stem>.txt, <stem>.transcript.json and,
// outside transcript mode, <stem>.md (plus <stem>.docx when enabled).
// Existing files are never overwritten.
func (w *implWriter) Write(ctx context.Context, req WriteRequest) (models.OutputPaths, error) {
	if err := os.MkdirAll(w.cfg.Dir, 0755); err != nil {
		return models.OutputPaths{}, apperr.New(apperr.KindIO, "create output dir", w.cfg.Dir, err)
	}

	title := SanitizeTitle(req.Title)
	base := title
	if w.cfg.DatePrefix {
		base = w.cfg.Now().Format("2006-01-02") + " - " + title
	}

	withMarkdown := req.Markdown != "" && req.Mode.Summarized()
	exts := []string{extTranscript, extSidecar}
	if withMarkdown {
		exts = append(exts, extMarkdown)
		if w.cfg.Docx {
			exts = append(exts, extDocx)
		}
	}

	state := stateFor(w.cfg.Dir)
	state.mu.Lock()
	defer state.mu.Unlock()

	files, stem, err := w.reserve(state, base, exts)
	if err != nil {
		return models.OutputPaths{}, err
	}
	w.logger.Debug(ctx, "Reserved output stem %q in %s", stem, w.cfg.Dir)

	sidecar, err := marshalSegments(req.Segments)
	if err != nil {
		discard(files)
		return models.OutputPaths{}, apperr.New(apperr.KindIO, "encode sidecar for", stem, err)
	}

	contents := map[string][]byte{
		extTranscript: []byte(req.TranscriptText),
		extSidecar:    sidecar,
		extMarkdown:   []byte(req.Markdown),
	}

	var (
		paths   models.OutputPaths
		written []string
	)
	for _, ext := range exts {
		f := files[ext]
		path := f.Name()

		if ext == extDocx {
			// godocx writes by path, so the reserved file is replaced
			err = f.Close()
			if err == nil {
				err = w.docx(req.Title, req.Markdown, path)
			}
		} else {
			_, err = f.Write(contents[ext])
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
		delete(files, ext)

		if err != nil {
			os.Remove(path)
			discard(files)
			return paths, writeError(path, written, err)
		}

		written = append(written, path)
		switch ext {
		case extTranscript:
			paths.TranscriptPath = path
		case extSidecar:
			paths.TranscriptSidecarPath = path
		case extMarkdown:
			paths.MarkdownPath = path
		case extDocx:
			paths.DocxPath = path
		}
	}

	w.logger.Info(ctx, "Wrote %d files for %q to %s", len(written), stem, w.cfg.Dir)
	return paths, nil
}

// reserve finds the next free stem for base and creates every artifact file
// with O_EXCL. Callers hold state.mu.
func (w *implWriter) reserve(state *dirState, base string, exts []string) (map[string]*os.File, string, error) {
	for n := state.next[base]; ; n++ {
		stem := stemFor(base, n)

		free, err := stemFree(w.cfg.Dir, stem)
		if err != nil {
			return nil, "", apperr.New(apperr.KindIO, "check output name", filepath.Join(w.cfg.Dir, stem), err)
		}
		if !free {
			continue
		}

		files, err := createExclusive(w.cfg.Dir, stem, exts)
		if errors.Is(err, os.ErrExist) {
			// created by another process between the check and the create
			continue
		}
		if err != nil {
			return nil, "", err
		}

		state.next[base] = n + 1
		return files, stem, nil
	}
}

func createExclusive(dir, stem string, exts []string) (map[string]*os.File, error) {
	files := make(map[string]*os.File, len(exts))
	for _, ext := range exts {
		path := filepath.Join(dir, stem+ext)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			for _, created := range files {
				created.Close()
				os.Remove(created.Name())
			}
			if errors.Is(err, os.ErrExist) {
				return nil, err
			}
			return nil, apperr.New(apperr.KindIO, "create", path, err)
		}
		files[ext] = f
	}
	return files, nil
}

// discard closes and removes reserved files that were never written, so an
// empty placeholder does not hold the stem.
func discard(files map[string]*os.File) {
	for _, f := range files {
		f.Close()
		os.Remove(f.Name())
	}
}

func writeError(path string, written []string, err error) error {
	if len(written) > 0 {
		err = fmt.Errorf("%w (already written: %s)", err, strings.Join(written, ", "))
	}
	return apperr.New(apperr.KindIO, "write", path, err)
}

func marshalSegments(segments []models.Segment) ([]byte, error) {
	if segments == nil {
		segments = []models.Segment{}
	}
	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadSidecar loads the segment list written next to a transcript
func ReadSidecar(path string) ([]models.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.New(apperr.KindIO, "read sidecar", path, err)
	}
	var segments []models.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, apperr.New(apperr.KindIO, "parse sidecar", path, err)
	}
	return segments, nil
}
