package output

import (
	"context"

	"marketplace-assistant/internal/domain/entity"
)

type AutomationPort interface {
	Login(ctx context.Context) (BrowseSession, error)
}

// BrowseSession is an authenticated handle to the automation service. A nil
// response with a nil error means the service returned nothing.
type BrowseSession interface {
	Browse(ctx context.Context, req entity.BrowseRequest) (*entity.BrowseResponse, error)
}
