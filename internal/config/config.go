package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/note-flow/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	EnvGeminiAPIKeys = "NOTEFLOW_GEMINI_API_KEYS"
	EnvOutputDir     = "NOTEFLOW_OUTPUT_DIR"
	EnvDownloadDir   = "NOTEFLOW_DOWNLOAD_DIR"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Media       MediaConfig       `yaml:"media"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Summary     SummaryConfig     `yaml:"summary"`
	Output      OutputConfig      `yaml:"output"`
	Watch       WatchConfig       `yaml:"watch"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	Output    string `yaml:"output"`
	Downloads string `yaml:"downloads"`
	Inbox     string `yaml:"inbox"`
	Archived  string `yaml:"archived"`
	Temp      string `yaml:"temp"`
}

type MediaConfig struct {
	MaxDuration     time.Duration `yaml:"max_duration"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	PollTimeout     time.Duration `yaml:"poll_timeout"`
	FFmpegBinary    string        `yaml:"ffmpeg_binary"`
	FFprobeBinary   string        `yaml:"ffprobe_binary"`
	YtdlpBinary     string        `yaml:"ytdlp_binary"`
	PdftotextBinary string        `yaml:"pdftotext_binary"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type SummaryConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	OllamaURL      string        `yaml:"ollama_url"`
	GeminiAPIKeys  []string      `yaml:"gemini_api_keys"`
	ChunkSize      int           `yaml:"chunk_size"`
	MaxParallel    int           `yaml:"max_parallel"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type OutputConfig struct {
	DatePrefix *bool `yaml:"date_prefix"`
	Docx       bool  `yaml:"docx"`
}

type WatchConfig struct {
	Mode string `yaml:"mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads a YAML config file, applies environment overrides and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvGeminiAPIKeys); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		c.Summary.GeminiAPIKeys = keys
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Paths.Output = v
	}
	if v := os.Getenv(EnvDownloadDir); v != "" {
		c.Paths.Downloads = v
	}
}

// DatePrefix reports whether output filenames carry a YYYY-MM-DD prefix (default true)
func (c *Config) DatePrefix() bool {
	return c.Output.DatePrefix == nil || *c.Output.DatePrefix
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Media.MaxDuration < 0 {
		return fmt.Errorf("media.max_duration must not be negative")
	}

	c.Paths.Output = expandHome(c.Paths.Output)
	c.Paths.Downloads = expandHome(c.Paths.Downloads)
	c.Paths.Inbox = expandHome(c.Paths.Inbox)
	c.Paths.Archived = expandHome(c.Paths.Archived)
	c.Paths.Temp = expandHome(c.Paths.Temp)
	c.Whisper.ModelPath = expandHome(c.Whisper.ModelPath)

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Media.MaxDuration == 0 {
		c.Media.MaxDuration = 2 * time.Hour
	}
	if c.Media.PollInterval <= 0 {
		c.Media.PollInterval = 5 * time.Second
	}
	if c.Media.PollTimeout <= 0 {
		c.Media.PollTimeout = 10 * time.Minute
	}
	if c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = "ffmpeg"
	}
	if c.Media.FFprobeBinary == "" {
		c.Media.FFprobeBinary = "ffprobe"
	}
	if c.Media.YtdlpBinary == "" {
		c.Media.YtdlpBinary = "yt-dlp"
	}
	if c.Media.PdftotextBinary == "" {
		c.Media.PdftotextBinary = "pdftotext"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}

	if c.Summary.Provider == "" {
		c.Summary.Provider = ProviderOllama
	}
	switch c.Summary.Provider {
	case ProviderOllama:
		if c.Summary.Model == "" {
			c.Summary.Model = "llama3:8b"
		}
		if c.Summary.OllamaURL == "" {
			c.Summary.OllamaURL = "http://localhost:11434"
		}
	case ProviderGemini:
		if c.Summary.Model == "" {
			c.Summary.Model = "gemini-2.5-flash"
		}
		if c.Summary.Enabled && len(c.Summary.GeminiAPIKeys) == 0 {
			return fmt.Errorf("summary.gemini_api_keys is required for the gemini provider")
		}
	default:
		return fmt.Errorf("summary.provider %q is not supported", c.Summary.Provider)
	}
	if c.Summary.ChunkSize <= 0 {
		c.Summary.ChunkSize = 4000
	}
	if c.Summary.MaxParallel <= 0 {
		c.Summary.MaxParallel = 1
	}
	if c.Summary.RequestTimeout <= 0 {
		c.Summary.RequestTimeout = 3 * time.Minute
	}

	if c.Watch.Mode == "" {
		c.Watch.Mode = string(models.ModeTranscript)
	}
	if _, err := models.ParseMode(c.Watch.Mode); err != nil {
		return fmt.Errorf("watch.mode: %w", err)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
