package marketplace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"marketplace-assistant/internal/application/port/input"
	"marketplace-assistant/internal/application/port/output"
	"marketplace-assistant/internal/domain/entity"
	"marketplace-assistant/internal/infrastructure/prompts"
	"marketplace-assistant/internal/usecase/normalizer"
)

var _ input.MarketplaceAssistant = (*UseCase)(nil)

type UseCase struct {
	session        output.BrowseSession
	normalizer     *normalizer.Normalizer
	logger         output.LoggerPort
	marketplaceURL string
}

// New expects an already authenticated session.
func New(
	session output.BrowseSession,
	n *normalizer.Normalizer,
	logger output.LoggerPort,
	marketplaceURL string,
) *UseCase {
	return &UseCase{
		session:        session,
		normalizer:     n,
		logger:         logger,
		marketplaceURL: marketplaceURL,
	}
}

func (uc *UseCase) Search(ctx context.Context, prompt string) (entity.SearchOutcome, error) {
	log := uc.logger.WithFields(map[string]any{
		"trace_id":  uuid.NewString(),
		"operation": "search",
	})

	command, err := prompts.SearchCommand(prompt)
	if err != nil {
		return entity.SearchOutcome{}, err
	}
	log.Debug("Using prompt", "command", command)

	resp, err := uc.session.Browse(ctx, entity.BrowseRequest{
		Command:  command,
		StartURL: uc.marketplaceURL,
		MaxSteps: entity.SearchMaxSteps,
	})
	if err != nil {
		log.Error("Browse failed", "error", err)
		return entity.SearchOutcome{}, fmt.Errorf("search browse: %w", err)
	}
	if resp == nil {
		log.Info("Automation returned no response")
		return entity.NotFound(entity.NotFoundNoResponse), nil
	}
	log.Debug("Received browse response", "status", resp.Status, "resultLen", len(resp.Result))

	if resp.Result == "" {
		log.Info("Automation returned an empty result")
		return entity.NotFound(entity.NotFoundEmptyResult), nil
	}

	text, err := uc.normalizer.Normalize(ctx, resp.Result)
	if err != nil {
		log.Error("Normalize failed", "error", err)
		return entity.SearchOutcome{}, err
	}
	if text == "" {
		log.Info("Normalization produced no text")
		return entity.NotFound(entity.NotFoundEmptyCompletion), nil
	}

	result, err := normalizer.Decode(text)
	if err != nil {
		log.Warn("Completion is not a valid search result", "error", err, "completion", text)
		return entity.SearchOutcome{}, err
	}

	log.Info("Search completed", "url", result.URL, "errors", len(result.Errors))
	return entity.Found(result), nil
}

func (uc *UseCase) Normalize(ctx context.Context, text string) (string, error) {
	return uc.normalizer.Normalize(ctx, text)
}

// MessageSellers hands the response back exactly as the automation service
// produced it, nil included.
func (uc *UseCase) MessageSellers(ctx context.Context, urls []string) (*entity.BrowseResponse, error) {
	log := uc.logger.WithFields(map[string]any{
		"trace_id":  uuid.NewString(),
		"operation": "message_sellers",
	})

	command, err := prompts.MessageSellersCommand(urls)
	if err != nil {
		return nil, err
	}
	log.Debug("Using prompt", "command", command, "sellers", len(urls))

	resp, err := uc.session.Browse(ctx, entity.BrowseRequest{
		Command:  command,
		StartURL: uc.marketplaceURL,
		MaxSteps: entity.MessageMaxSteps,
	})
	if err != nil {
		log.Error("Browse failed", "error", err)
		return nil, fmt.Errorf("message sellers browse: %w", err)
	}

	log.Info("Message sellers completed", "hasResponse", resp != nil)
	return resp, nil
}
