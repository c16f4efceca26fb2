package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// ThreadRepository defines the interface for email thread data access
type ThreadRepository interface {
	// FindByID retrieves a thread (nil when missing)
	FindByID(ctx context.Context, threadID string) (*entities.Thread, error)

	// ListParticipants returns participants with names resolved from customers or profiles
	ListParticipants(ctx context.Context, threadID string) ([]entities.Participant, error)

	// ListLinkedCompanyIDs returns companies linked to the thread
	ListLinkedCompanyIDs(ctx context.Context, threadID string) ([]uuid.UUID, error)

	// ListMessages returns all messages of a thread
	ListMessages(ctx context.Context, threadID string) ([]entities.ThreadMessage, error)

	// AddParticipant links a participant unless the same link already exists
	AddParticipant(ctx context.Context, p *entities.ThreadParticipant) error

	// LinkCompany links a company to the thread unless already linked
	LinkCompany(ctx context.Context, link *entities.ThreadCompanyLink) error

	// SetStage upserts the processing stage of a thread
	SetStage(ctx context.Context, threadID string, userID uuid.UUID, stage entities.ThreadStage) error
}
