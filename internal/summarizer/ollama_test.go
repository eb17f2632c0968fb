package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/note-flow/internal/apperr"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3:8b","response":"  hello  ","done":true}`))
	}))
	defer srv.Close()

	gen := NewOllama(srv.URL+"/", "llama3:8b", srv.Client())
	out, err := gen.Generate(context.Background(), "say hi")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Generate() = %q, want hello", out)
	}
	if got.Model != "llama3:8b" || got.Prompt != "say hi" || got.Stream {
		t.Errorf("request = %+v", got)
	}
}

func TestOllamaGenerateErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL, "missing", nil).Generate(context.Background(), "p")
	if !apperr.Is(err, apperr.KindGeneration) {
		t.Fatalf("Generate() error = %v, want generation", err)
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry status and body: %v", err)
	}

	srv.Close()
	_, err = NewOllama(srv.URL, "m", nil).Generate(context.Background(), "p")
	if !apperr.Is(err, apperr.KindGeneration) {
		t.Errorf("Generate() on closed server error = %v, want generation", err)
	}
}
