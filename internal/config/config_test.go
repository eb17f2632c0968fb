package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths:   PathsConfig{Output: "data/output"},
				Whisper: WhisperConfig{ModelPath: "models/test.bin", BinaryPath: "./whisper"},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Paths:   PathsConfig{Output: "data/output"},
				Whisper: WhisperConfig{BinaryPath: "./whisper"},
			},
			wantErr: true,
		},
		{
			name: "missing output path",
			config: Config{
				Whisper: WhisperConfig{ModelPath: "models/test.bin", BinaryPath: "./whisper"},
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: Config{
				Paths:   PathsConfig{Output: "data/output"},
				Whisper: WhisperConfig{ModelPath: "models/test.bin", BinaryPath: "./whisper"},
				Summary: SummaryConfig{Provider: "openai"},
			},
			wantErr: true,
		},
		{
			name: "gemini enabled without keys",
			config: Config{
				Paths:   PathsConfig{Output: "data/output"},
				Whisper: WhisperConfig{ModelPath: "models/test.bin", BinaryPath: "./whisper"},
				Summary: SummaryConfig{Enabled: true, Provider: ProviderGemini},
			},
			wantErr: true,
		},
		{
			name: "invalid watch mode",
			config: Config{
				Paths:   PathsConfig{Output: "data/output"},
				Whisper: WhisperConfig{ModelPath: "models/test.bin", BinaryPath: "./whisper"},
				Watch:   WatchConfig{Mode: "poem"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Paths:   PathsConfig{Output: "data/output"},
		Whisper: WhisperConfig{ModelPath: "models/test.bin", BinaryPath: "./whisper"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Media.MaxDuration != 2*time.Hour {
		t.Errorf("MaxDuration = %v, want 2h", cfg.Media.MaxDuration)
	}
	if cfg.Media.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want 5s", cfg.Media.PollInterval)
	}
	if cfg.Media.PollTimeout != 10*time.Minute {
		t.Errorf("PollTimeout = %v, want 10m", cfg.Media.PollTimeout)
	}
	if cfg.Summary.Provider != ProviderOllama || cfg.Summary.Model != "llama3:8b" {
		t.Errorf("Summary = %+v, want ollama/llama3:8b", cfg.Summary)
	}
	if cfg.Summary.ChunkSize != 4000 {
		t.Errorf("ChunkSize = %d, want 4000", cfg.Summary.ChunkSize)
	}
	if cfg.Summary.RequestTimeout != 3*time.Minute {
		t.Errorf("RequestTimeout = %v, want 3m", cfg.Summary.RequestTimeout)
	}
	if !cfg.DatePrefix() {
		t.Error("DatePrefix() = false, want true by default")
	}
	if cfg.Watch.Mode != "transcript" {
		t.Errorf("Watch.Mode = %q, want transcript", cfg.Watch.Mode)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvGeminiAPIKeys, "")
	t.Setenv(EnvOutputDir, "")
	t.Setenv(EnvDownloadDir, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  output: "data/vault"
  downloads: "data/downloads"

media:
  max_duration: 90m
  poll_interval: 2s
  poll_timeout: 1m

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"

summary:
  enabled: true
  provider: gemini
  gemini_api_keys: ["k1", "k2"]
  chunk_size: 2000

output:
  date_prefix: false
  docx: true

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Output != "data/vault" {
		t.Errorf("Output = %v, want %v", cfg.Paths.Output, "data/vault")
	}
	if cfg.Media.MaxDuration != 90*time.Minute {
		t.Errorf("MaxDuration = %v, want 90m", cfg.Media.MaxDuration)
	}
	if cfg.Media.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.Media.PollInterval)
	}
	if cfg.Summary.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want gemini-2.5-flash", cfg.Summary.Model)
	}
	if len(cfg.Summary.GeminiAPIKeys) != 2 {
		t.Errorf("GeminiAPIKeys = %v, want 2 keys", cfg.Summary.GeminiAPIKeys)
	}
	if cfg.DatePrefix() {
		t.Error("DatePrefix() = true, want false")
	}
	if !cfg.Output.Docx {
		t.Error("Output.Docx = false, want true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvGeminiAPIKeys, " a , b ,,c")
	t.Setenv(EnvOutputDir, "env/vault")
	t.Setenv(EnvDownloadDir, "env/downloads")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  output: "data/vault"
whisper:
  model_path: "m.bin"
  binary_path: "./whisper"
summary:
  provider: gemini
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.Output != "env/vault" || cfg.Paths.Downloads != "env/downloads" {
		t.Errorf("Paths = %+v, want env overrides", cfg.Paths)
	}
	want := []string{"a", "b", "c"}
	if len(cfg.Summary.GeminiAPIKeys) != len(want) {
		t.Fatalf("GeminiAPIKeys = %v, want %v", cfg.Summary.GeminiAPIKeys, want)
	}
	for i := range want {
		if cfg.Summary.GeminiAPIKeys[i] != want[i] {
			t.Errorf("GeminiAPIKeys[%d] = %q, want %q", i, cfg.Summary.GeminiAPIKeys[i], want[i])
		}
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestValidateExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := Config{
		Paths: PathsConfig{
			Output:   "~/notes",
			Archived: "~/archived",
			Temp:     "~/tmp/note-flow",
		},
		Whisper: WhisperConfig{ModelPath: "~/models/test.bin", BinaryPath: "./whisper"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"output", cfg.Paths.Output, filepath.Join(home, "notes")},
		{"archived", cfg.Paths.Archived, filepath.Join(home, "archived")},
		{"temp", cfg.Paths.Temp, filepath.Join(home, "tmp/note-flow")},
		{"model", cfg.Whisper.ModelPath, filepath.Join(home, "models/test.bin")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
