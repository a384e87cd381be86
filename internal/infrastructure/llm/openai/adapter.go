package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/domain/entity"
	"marketplace-assistant/internal/infrastructure/transport"
)

const serviceName = "openai"

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
		Timeout: 5 * time.Minute,
	}
}

// NewAdapter never fails on a missing API key; the service rejects each call
// instead.
func NewAdapter(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = transport.NewHTTPClient(serviceName, cfg.Timeout, cfg.Logger)

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, wrapError(err)
	}

	choices := make([]entity.Message, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, convertResponseMessage(choice.Message))
	}

	if a.logger != nil {
		a.logger.Debug("Chat completion received",
			"model", resp.Model,
			"choices", len(choices),
			"totalTokens", resp.Usage.TotalTokens,
		)
	}

	return &output.ChatResponse{Choices: choices}, nil
}

func wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &entity.TransportError{
			Service:    serviceName,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &entity.TransportError{
			Service:    serviceName,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       reqErr.HTTPStatus,
			Err:        err,
		}
	}
	return &entity.TransportError{
		Service: serviceName,
		Err:     fmt.Errorf("chat completion failed: %w", err),
	}
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		if msg.Name != "" {
			oaiMsg.Name = msg.Name
		}
		result = append(result, oaiMsg)
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	return entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
		Name:    msg.Name,
	}
}
