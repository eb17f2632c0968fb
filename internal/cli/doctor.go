package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/note-flow/internal/config"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := deps.Formatter
			cfg := deps.App.Config
			exec := deps.App.Executor
			ok := true

			tools := []struct{ name, binary, hint string }{
				{"ffmpeg", cfg.Media.FFmpegBinary, "install with: brew install ffmpeg"},
				{"ffprobe", cfg.Media.FFprobeBinary, "ships with ffmpeg"},
				{"whisper", cfg.Whisper.BinaryPath, "build whisper.cpp and set whisper.binary_path"},
				{"yt-dlp", cfg.Media.YtdlpBinary, "needed for URLs. Install with: brew install yt-dlp"},
				{"pdftotext", cfg.Media.PdftotextBinary, "needed for PDFs. Install with: brew install poppler"},
			}
			for _, t := range tools {
				if path, err := exec.LookPath(t.binary); err != nil {
					f.SetupCheck(t.name, false, fmt.Sprintf("%s not found, %s", t.binary, t.hint))
					ok = false
				} else {
					f.SetupCheck(t.name, true, path)
				}
			}

			if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
				f.SetupCheck("Whisper model", false, fmt.Sprintf("%s not found", cfg.Whisper.ModelPath))
				ok = false
			} else {
				f.SetupCheck("Whisper model", true, cfg.Whisper.ModelPath)
			}

			if err := os.MkdirAll(cfg.Paths.Output, 0755); err != nil {
				f.SetupCheck("Output directory", false, err.Error())
				ok = false
			} else {
				f.SetupCheck("Output directory", true, cfg.Paths.Output)
			}

			if !checkSummary(cmd.Context(), f, cfg.Summary) {
				ok = false
			}

			if ok {
				f.Success("\nAll prerequisites met.")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}

func checkSummary(ctx context.Context, f *Formatter, cfg config.SummaryConfig) bool {
	if !cfg.Enabled {
		f.SetupCheck("Summarization", true, "disabled")
		return true
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		if len(cfg.GeminiAPIKeys) == 0 {
			f.SetupCheck("Gemini API keys", false, "not set. Set "+config.EnvGeminiAPIKeys+" or add to config")
			return false
		}
		f.SetupCheck("Gemini API keys", true, fmt.Sprintf("%d configured, model %s", len(cfg.GeminiAPIKeys), cfg.Model))
		return true
	default:
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		url := strings.TrimRight(cfg.OllamaURL, "/") + "/api/tags"
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err == nil {
			var resp *http.Response
			resp, err = http.DefaultClient.Do(req)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					err = fmt.Errorf("HTTP %d", resp.StatusCode)
				}
			}
		}
		if err != nil {
			f.SetupCheck("Ollama", false, fmt.Sprintf("%s unreachable: %v", cfg.OllamaURL, err))
			return false
		}
		f.SetupCheck("Ollama", true, fmt.Sprintf("%s, model %s", cfg.OllamaURL, cfg.Model))
		return true
	}
}
