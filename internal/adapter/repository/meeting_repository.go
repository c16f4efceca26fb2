package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

var _ repositories.MeetingRepository = (*MeetingRepository)(nil)

// candidateQuery builds the recovery candidate predicate
func (r *MeetingRepository) candidateQuery(ctx context.Context, filter repositories.CandidateFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("recall_bot_id IS NOT NULL").
		Where("start_time < ?", filter.Now).
		Where("status <> ?", entities.MeetingStatusError).
		Where("(transcript IS NULL OR btrim(transcript) = '' OR dispatch_status = ?)", entities.DispatchStatusPending)

	if filter.MeetingID != nil {
		query = query.Where("id = ?", *filter.MeetingID)
	}
	query = query.Order("start_time ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}

// ListRecoveryCandidates retrieves meetings eligible for transcript recovery
func (r *MeetingRepository) ListRecoveryCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	if err := r.candidateQuery(ctx, filter).Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// FindByID retrieves a meeting by ID
func (r *MeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// FindByBotID retrieves the most recent meeting recorded by a bot
func (r *MeetingRepository) FindByBotID(ctx context.Context, botID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("recall_bot_id = ?", botID).
		Order("start_time DESC").
		First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}

// MarkDispatchCompleted flips the dispatch flag of a meeting
func (r *MeetingRepository) MarkDispatchCompleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Update("dispatch_status", entities.DispatchStatusCompleted).Error
}

// MarkTerminal stores a terminal status and optional placeholder transcript.
// Dispatch is closed in the same update so the meeting leaves the candidate set.
func (r *MeetingRepository) MarkTerminal(ctx context.Context, id uuid.UUID, status entities.MeetingStatus, transcript *string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(terminalUpdates(status, transcript)).Error
}

func terminalUpdates(status entities.MeetingStatus, transcript *string) map[string]interface{} {
	updates := map[string]interface{}{
		"status":          status,
		"dispatch_status": entities.DispatchStatusCompleted,
	}
	if transcript != nil {
		updates["transcript"] = *transcript
	}
	return updates
}
