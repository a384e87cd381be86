package output

import (
	"context"

	"marketplace-assistant/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Temperature float32
	JSONMode    bool
}

// ChatResponse holds every choice the service returned, possibly none.
type ChatResponse struct {
	Choices []entity.Message
}
