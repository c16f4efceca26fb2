package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// NextStepRepository defines the interface for action item data access
type NextStepRepository interface {
	// ExistsOpen reports whether a todo item with the same text already exists for the company and source
	ExistsOpen(ctx context.Context, key NextStepKey) (bool, error)

	// Create inserts a new next step
	Create(ctx context.Context, step *entities.NextStep) error

	// CreateAssignment inserts one assignment row
	CreateAssignment(ctx context.Context, a *entities.NextStepAssignment) error
}

// NextStepKey is the dedup key of an open next step
type NextStepKey struct {
	CompanyID   uuid.UUID
	Description string
	SourceType  entities.SourceType
	SourceID    string
}
