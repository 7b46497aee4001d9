package services

import (
	"context"
	"log"
	"strings"

	"chatgate-backend/internal/models"
)

// Provider produces a normalized text reply for a single prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type RelayService struct {
	provider Provider
}

func NewRelayService(provider Provider) *RelayService {
	return &RelayService{provider: provider}
}

// Answer selects the actionable message from the conversation and relays it
// to the model provider. The provider is never called without usable input.
func (s *RelayService) Answer(ctx context.Context, messages []models.ChatMessage) (string, error) {
	prompt := latestUserMessage(messages)
	if prompt == "" {
		return "", &NoInputError{Message: "No user message"}
	}

	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		// Provider internals stay in the log; the caller gets a
		// generic failure.
		log.Printf("provider error: %v", err)
		return "", &ProviderError{Message: "Failed to get AI response"}
	}

	return text, nil
}

// latestUserMessage returns the trimmed text of the most recent user entry,
// or "" when no user entry exists or the most recent one is blank.
func latestUserMessage(messages []models.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleUser {
			return strings.TrimSpace(messages[i].Text)
		}
	}
	return ""
}

type NoInputError struct{ Message string }

func (e *NoInputError) Error() string { return e.Message }

type ProviderError struct{ Message string }

func (e *ProviderError) Error() string { return e.Message }
