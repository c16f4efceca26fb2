package repositories

import (
	"context"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// FeatureRequestRepository defines the interface for feature request data access
type FeatureRequestRepository interface {
	// ExistsTitle reports whether the thread already has a request with this title, ignoring case
	ExistsTitle(ctx context.Context, threadID, title string) (bool, error)

	// Create inserts a new feature request
	Create(ctx context.Context, fr *entities.FeatureRequest) error
}
