package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/note-flow/pkg/executor"
)

type documentReader struct {
	executor  executor.Executor
	pdftotext string
}

// NewDocumentReader reads .txt/.md directly and converts .pdf with pdftotext
func NewDocumentReader(exec executor.Executor, pdftotext string) DocumentReader {
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	return &documentReader{executor: exec, pdftotext: pdftotext}
}

func (d *documentReader) ReadText(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return d.readPDF(ctx, path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("document %s is not valid UTF-8", filepath.Base(path))
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document format: %s", filepath.Ext(path))
	}
}

func (d *documentReader) readPDF(ctx context.Context, path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "note-flow-pdf-*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, "out.txt")
	if _, err := d.executor.Execute(ctx, d.pdftotext, "-enc", "UTF-8", "-q", path, outPath); err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read pdftotext output: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
