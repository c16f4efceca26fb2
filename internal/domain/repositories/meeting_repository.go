package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// ListRecoveryCandidates returns meetings eligible for transcript recovery,
	// oldest first. A zero limit returns every candidate.
	ListRecoveryCandidates(ctx context.Context, filter CandidateFilter) ([]entities.Meeting, error)

	// FindByID retrieves a meeting by its ID (nil when missing)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByBotID retrieves the meeting recorded by a vendor bot (nil when missing)
	FindByBotID(ctx context.Context, botID string) (*entities.Meeting, error)

	// MarkDispatchCompleted flips dispatch_status to completed
	MarkDispatchCompleted(ctx context.Context, id uuid.UUID) error

	// MarkTerminal records a terminal status, optionally with placeholder transcript text,
	// and closes dispatch in the same write
	MarkTerminal(ctx context.Context, id uuid.UUID, status entities.MeetingStatus, transcript *string) error
}

// CandidateFilter narrows the recovery candidate query
type CandidateFilter struct {
	Now       time.Time
	MeetingID *uuid.UUID
	Limit     int
}
