package assistant

import (
	"context"
	"log/slog"
	"strings"
)

// Generator is the upstream text generation call.
type Generator interface {
	Generate(ctx context.Context, instruction, message string) (string, error)
}

type Service struct {
	generator  Generator
	configured bool
	logger     *slog.Logger
}

func NewService(generator Generator, configured bool, logger *slog.Logger) *Service {
	return &Service{
		generator:  generator,
		configured: configured,
		logger:     logger,
	}
}

// Respond answers a chat message. Greetings get a canned reply without
// touching the upstream model; everything else is forwarded with the fixed
// advisory instruction.
func (s *Service) Respond(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrMessageMissing
	}

	if !s.configured {
		s.logger.Error("assistant API key is not configured")
		return "", ErrNotConfigured
	}

	normalized := strings.ToLower(strings.TrimSpace(message))
	if _, ok := greetings[normalized]; ok {
		return greetingReply, nil
	}

	reply, err := s.generator.Generate(ctx, systemInstruction, message)
	if err != nil {
		s.logger.Error("assistant upstream call failed", "error", err)
		return "", ErrUpstream
	}
	return reply, nil
}
