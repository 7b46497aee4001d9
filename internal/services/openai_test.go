package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestOpenAIService(serverURL string) *OpenAIService {
	svc := NewOpenAIService("sk-test", "gpt-5-mini", 300, 5*time.Second)
	svc.baseURL = serverURL
	return svc
}

func TestGenerate_RequestShape(t *testing.T) {
	var gotBody responsesRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/responses" {
			t.Errorf("Expected path /responses, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"output_text": "hi"})
	}))
	defer srv.Close()

	svc := newTestOpenAIService(srv.URL)
	if _, err := svc.Generate(context.Background(), "hello"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-5-mini" {
		t.Errorf("Expected model gpt-5-mini, got %q", gotBody.Model)
	}
	if gotBody.Input != "hello" {
		t.Errorf("Expected input 'hello', got %q", gotBody.Input)
	}
	if gotBody.MaxOutputTokens != 300 {
		t.Errorf("Expected max_output_tokens 300, got %d", gotBody.MaxOutputTokens)
	}
	if gotBody.Reasoning.Effort != "minimal" {
		t.Errorf("Expected reasoning effort 'minimal', got %q", gotBody.Reasoning.Effort)
	}
}

func TestGenerate_Normalization(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			"flat field only",
			`{"output_text": "flat reply"}`,
			"flat reply",
		},
		{
			"segmented only",
			`{"output": [
				{"type": "message", "content": [
					{"type": "output_text", "text": "part one "},
					{"type": "output_text", "text": "part two"}
				]},
				{"type": "message", "content": [
					{"type": "output_text", "text": " part three"}
				]}
			]}`,
			"part one part two part three",
		},
		{
			"flat field wins over segments",
			`{"output_text": "flat", "output": [
				{"type": "message", "content": [{"type": "output_text", "text": "segmented"}]}
			]}`,
			"flat",
		},
		{
			"non-text parts are skipped",
			`{"output": [
				{"type": "reasoning", "content": []},
				{"type": "message", "content": [
					{"type": "refusal", "text": "nope"},
					{"type": "output_text", "text": "kept"}
				]}
			]}`,
			"kept",
		},
		{
			"neither shape yields text",
			`{"output": []}`,
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.payload))
			}))
			defer srv.Close()

			svc := newTestOpenAIService(srv.URL)
			text, err := svc.Generate(context.Background(), "hello")
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if text != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, text)
			}
		})
	}
}

func TestGenerate_ProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": {"message": "upstream exploded"}}`))
	}))
	defer srv.Close()

	svc := newTestOpenAIService(srv.URL)
	if _, err := svc.Generate(context.Background(), "hello"); err == nil {
		t.Error("Expected error for non-200 provider status")
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	svc := newTestOpenAIService(srv.URL)
	if _, err := svc.Generate(context.Background(), "hello"); err == nil {
		t.Error("Expected error for malformed provider body")
	}
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	svc := NewOpenAIService("", "gpt-5-mini", 300, 5*time.Second)

	if _, err := svc.Generate(context.Background(), "hello"); err == nil {
		t.Error("Expected error when API key is not configured")
	}
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]string{"output_text": "late"})
	}))
	defer srv.Close()

	svc := NewOpenAIService("sk-test", "gpt-5-mini", 300, 20*time.Millisecond)
	svc.baseURL = srv.URL

	if _, err := svc.Generate(context.Background(), "hello"); err == nil {
		t.Error("Expected timeout to surface as an error")
	}
}
