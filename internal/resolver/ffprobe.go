package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/note-flow/pkg/executor"
)

type ffprobeProber struct {
	executor executor.Executor
	binary   string
}

// NewFFprobe creates a Prober that shells out to ffprobe
func NewFFprobe(exec executor.Executor, binary string) Prober {
	if binary == "" {
		binary = "ffprobe"
	}
	return &ffprobeProber{executor: exec, binary: binary}
}

type ffprobeOutput struct {
	Format struct {
		Duration string            `json:"duration"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
}

func (p *ffprobeProber) Probe(ctx context.Context, path string) (ProbeResult, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration:format_tags=title",
		"-of", "json",
		path,
	}

	out, err := p.executor.Execute(ctx, p.binary, args...)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (ProbeResult, error) {
	if strings.TrimSpace(out) == "" {
		return ProbeResult{}, fmt.Errorf("ffprobe returned no output; ensure ffmpeg is installed")
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return ProbeResult{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var res ProbeResult
	if d := strings.TrimSpace(parsed.Format.Duration); d != "" && d != "N/A" {
		secs, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return ProbeResult{}, fmt.Errorf("parse duration %q: %w", d, err)
		}
		res.DurationSeconds = secs
		res.HasDuration = true
	}
	for k, v := range parsed.Format.Tags {
		if strings.EqualFold(k, "title") {
			res.Title = strings.TrimSpace(v)
			break
		}
	}
	return res, nil
}
