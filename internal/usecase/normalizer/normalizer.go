package normalizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/domain/entity"
	"marketplace-assistant/internal/infrastructure/prompts"
)

// Normalizer coerces the browsing agent's free-form answer into the
// SearchResult JSON shape. It is best effort: the completion may still not
// decode.
type Normalizer struct {
	llm      output.LLMPort
	logger   output.LoggerPort
	jsonMode bool
}

func New(llm output.LLMPort, logger output.LoggerPort, jsonMode bool) *Normalizer {
	return &Normalizer{
		llm:      llm,
		logger:   logger,
		jsonMode: jsonMode,
	}
}

func (n *Normalizer) Normalize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	n.logger.Debug("Normalizing browse result", "inputLen", len(text))

	instruction, err := prompts.NormalizeInstruction(text)
	if err != nil {
		return "", err
	}

	resp, err := n.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: prompts.NormalizeSystemPrompt},
			{Role: entity.RoleUser, Content: instruction},
		},
		JSONMode: n.jsonMode,
	})
	if err != nil {
		return "", fmt.Errorf("normalize completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		n.logger.Warn("Completion returned no choices")
		return "", nil
	}

	n.logger.Debug("Normalized browse result", "outputLen", len(resp.Choices[0].Content))
	return resp.Choices[0].Content, nil
}

type completionResult struct {
	URL    *string  `json:"url"`
	Errors []string `json:"errors"`
}

// Decode is the pure parsing stage. Anything that is not a JSON object of the
// SearchResult shape yields *entity.MalformedCompletionError: a null document,
// a missing url, or an empty url with no errors to explain it.
func Decode(text string) (entity.SearchResult, error) {
	var decoded *completionResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &decoded); err != nil {
		return entity.SearchResult{}, &entity.MalformedCompletionError{Raw: text, Err: err}
	}
	if decoded == nil {
		return entity.SearchResult{}, &entity.MalformedCompletionError{Raw: text, Err: errors.New("null document")}
	}
	if decoded.URL == nil {
		return entity.SearchResult{}, &entity.MalformedCompletionError{Raw: text, Err: errors.New("missing url")}
	}
	if *decoded.URL == "" && len(decoded.Errors) == 0 {
		return entity.SearchResult{}, &entity.MalformedCompletionError{Raw: text, Err: errors.New("empty url without errors")}
	}

	result := entity.SearchResult{URL: *decoded.URL, Errors: decoded.Errors}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return result, nil
}
