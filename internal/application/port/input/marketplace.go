package input

import (
	"context"

	"marketplace-assistant/internal/domain/entity"
)

type MarketplaceAssistant interface {
	Search(ctx context.Context, prompt string) (entity.SearchOutcome, error)
	Normalize(ctx context.Context, text string) (string, error)
	MessageSellers(ctx context.Context, urls []string) (*entity.BrowseResponse, error)
}
