package resolver

import (
	"path/filepath"
	"strings"
)

// Format is the broad kind of a supported input file
type Format int

const (
	FormatUnsupported Format = iota
	FormatAudio
	FormatVideo
	FormatDocument
)

var (
	audioExtensions    = []string{".wav", ".mp3", ".m4a", ".aac", ".flac", ".ogg"}
	videoExtensions    = []string{".mp4", ".mkv", ".webm", ".mov", ".avi"}
	documentExtensions = []string{".pdf", ".txt", ".md"}
)

// Classify returns the format implied by path's extension
func Classify(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case contains(audioExtensions, ext):
		return FormatAudio
	case contains(videoExtensions, ext):
		return FormatVideo
	case contains(documentExtensions, ext):
		return FormatDocument
	default:
		return FormatUnsupported
	}
}

// IsMedia reports whether path has a supported audio or video extension
func IsMedia(path string) bool {
	f := Classify(path)
	return f == FormatAudio || f == FormatVideo
}

// IsSupported reports whether path can be ingested at all
func IsSupported(path string) bool {
	return Classify(path) != FormatUnsupported
}

// SupportedExtensions lists every accepted extension
func SupportedExtensions() []string {
	out := make([]string, 0, len(audioExtensions)+len(videoExtensions)+len(documentExtensions))
	out = append(out, audioExtensions...)
	out = append(out, videoExtensions...)
	return append(out, documentExtensions...)
}

func contains(list []string, ext string) bool {
	for _, e := range list {
		if e == ext {
			return true
		}
	}
	return false
}
