package service

import (
	"context"

	"rag-chat-be/internal/constant"
	"rag-chat-be/pkg/rag/pipeline"
)

type IChatService interface {
	// Respond runs the full pipeline for one user message, forwarding
	// response fragments to emit as they are generated.
	Respond(ctx context.Context, sessionID, message string, emit func(token string) error) (string, error)
	Greeting() string
}

type chatService struct {
	pipeline *pipeline.Pipeline
}

func NewChatService(p *pipeline.Pipeline) IChatService {
	return &chatService{
		pipeline: p,
	}
}

func (s *chatService) Respond(ctx context.Context, sessionID, message string, emit func(token string) error) (string, error) {
	return s.pipeline.Respond(ctx, sessionID, message, emit)
}

func (s *chatService) Greeting() string {
	return constant.GreetingMessage
}
