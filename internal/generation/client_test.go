package generation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/relialabs/logtoku/internal/config"
)

func testConfig(url string) *config.GenerationEnvConfig {
	return &config.GenerationEnvConfig{
		GenerationAPIUrl: url,
		ClientTimeout:    5 * time.Second,
		RetryMax:         0,
	}
}

func TestNewClient_NilConfig(t *testing.T) {
	_, err := NewClient(nil, "token")
	if err == nil {
		t.Fatal("expected error when cfg is nil")
	}
}

func TestGenerate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test_token" {
			t.Errorf("unexpected auth header: %q", got)
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !req.OutputScores {
			t.Error("expected output_scores to be forced on")
		}

		resp := GenerateResponse{
			Success: true,
			Text:    "hello",
			Scores:  [][]float64{{5, 4, 1, 0, 0}, {3, 3, 3, 1, 0}},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	c, err := NewClient(testConfig(ts.URL), "hf_test_token")
	if err != nil {
		t.Fatalf("unexpected new error: %v", err)
	}

	out, err := c.Generate(GenerateRequest{Prompt: "hi", MaxNewTokens: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out.Text != "hello" || len(out.Scores) != 2 || len(out.Scores[0]) != 5 {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestGenerate_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c, err := NewClient(testConfig(ts.URL), "token")
	if err != nil {
		t.Fatalf("unexpected new error: %v", err)
	}

	if _, err := c.Generate(GenerateRequest{Prompt: "hi"}); err == nil {
		t.Fatal("expected error on 5xx response")
	}
}

func TestGenerate_SuccessFalse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(GenerateResponse{Success: false, Message: "model not loaded"}); err != nil {
			panic(err)
		}
	}))
	defer ts.Close()

	c, err := NewClient(testConfig(ts.URL), "token")
	if err != nil {
		t.Fatalf("unexpected new error: %v", err)
	}

	if _, err := c.Generate(GenerateRequest{Prompt: "hi"}); err == nil {
		t.Fatal("expected error when api reports success=false")
	}
}
