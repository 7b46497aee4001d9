package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIService calls the OpenAI Responses API with a fixed request shape:
// one prompt, a bounded output size, minimal reasoning effort. No
// per-request model parameters are accepted.
type OpenAIService struct {
	apiKey          string
	model           string
	maxOutputTokens int
	baseURL         string
	client          *http.Client
}

func NewOpenAIService(apiKey, model string, maxOutputTokens int, timeout time.Duration) *OpenAIService {
	return &OpenAIService{
		apiKey:          apiKey,
		model:           model,
		maxOutputTokens: maxOutputTokens,
		baseURL:         openAIBaseURL,
		client:          &http.Client{Timeout: timeout},
	}
}

type responsesRequest struct {
	Model           string          `json:"model"`
	Input           string          `json:"input"`
	MaxOutputTokens int             `json:"max_output_tokens"`
	Reasoning       reasoningConfig `json:"reasoning"`
}

type reasoningConfig struct {
	Effort string `json:"effort"`
}

// responsesReply is the provider envelope. The API may populate the
// flattened output_text field, the segmented output list, or both.
type responsesReply struct {
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends the prompt and returns the normalized reply text. An empty
// string with a nil error is a valid outcome.
func (s *OpenAIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY is not configured")
	}

	body, err := json.Marshal(responsesRequest{
		Model:           s.model,
		Input:           prompt,
		MaxOutputTokens: s.maxOutputTokens,
		Reasoning:       reasoningConfig{Effort: "minimal"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("OpenAI returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var reply responsesReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI response: %w", err)
	}

	return extractText(&reply), nil
}

// extractText flattens a provider reply into a single string. A non-empty
// output_text field wins; otherwise the text parts of the segmented output
// are concatenated in order.
func extractText(reply *responsesReply) string {
	if reply.OutputText != "" {
		return reply.OutputText
	}

	var sb strings.Builder
	for _, item := range reply.Output {
		for _, part := range item.Content {
			if part.Type == "output_text" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}
