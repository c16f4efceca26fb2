package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// ThreadRepository handles email thread data operations
type ThreadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

var _ repositories.ThreadRepository = (*ThreadRepository)(nil)

// participantRow is the flattened participant join result
type participantRow struct {
	CustomerID    *uuid.UUID
	ProfileID     *uuid.UUID
	CustomerName  *string
	CustomerEmail *string
	ProfileName   *string
	ProfileEmail  *string
}

// FindByID retrieves a thread by ID
func (r *ThreadRepository) FindByID(ctx context.Context, threadID string) (*entities.Thread, error) {
	var thread entities.Thread
	if err := r.db.WithContext(ctx).Where("thread_id = ?", threadID).First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

// ListParticipants joins participants to customers and profiles for names and emails
func (r *ThreadRepository) ListParticipants(ctx context.Context, threadID string) ([]entities.Participant, error) {
	var rows []participantRow
	err := r.db.WithContext(ctx).
		Table("thread_participants AS tp").
		Select(`tp.customer_id, tp.profile_id,
			c.full_name AS customer_name, c.email AS customer_email,
			p.full_name AS profile_name, p.email AS profile_email`).
		Joins("LEFT JOIN customers c ON c.customer_id = tp.customer_id").
		Joins("LEFT JOIN profiles p ON p.id = tp.profile_id").
		Where("tp.thread_id = ?", threadID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	participants := make([]entities.Participant, 0, len(rows))
	for _, row := range rows {
		p := entities.Participant{CustomerID: row.CustomerID, ProfileID: row.ProfileID}
		switch {
		case row.CustomerID != nil:
			p.Name = deref(row.CustomerName)
			p.Email = deref(row.CustomerEmail)
		case row.ProfileID != nil:
			p.Name = deref(row.ProfileName)
			p.Email = deref(row.ProfileEmail)
		}
		participants = append(participants, p)
	}
	return participants, nil
}

// ListLinkedCompanyIDs retrieves companies linked to a thread
func (r *ThreadRepository) ListLinkedCompanyIDs(ctx context.Context, threadID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.ThreadCompanyLink{}).
		Where("thread_id = ?", threadID).
		Distinct().
		Pluck("company_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListMessages retrieves messages of a thread in send order
func (r *ThreadRepository) ListMessages(ctx context.Context, threadID string) ([]entities.ThreadMessage, error) {
	var messages []entities.ThreadMessage
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// AddParticipant inserts a participant link if an identical one is not present
func (r *ThreadRepository) AddParticipant(ctx context.Context, p *entities.ThreadParticipant) error {
	if p == nil {
		return errors.New("participant cannot be nil")
	}

	query := r.db.WithContext(ctx).Model(&entities.ThreadParticipant{}).Where("thread_id = ?", p.ThreadID)
	switch {
	case p.CustomerID != nil:
		query = query.Where("customer_id = ?", *p.CustomerID)
	case p.ProfileID != nil:
		query = query.Where("profile_id = ?", *p.ProfileID)
	default:
		return errors.New("participant needs a customer or profile")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// LinkCompany inserts the thread/company link, ignoring duplicates
func (r *ThreadRepository) LinkCompany(ctx context.Context, link *entities.ThreadCompanyLink) error {
	if link == nil {
		return errors.New("link cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

// SetStage upserts the thread processing stage
func (r *ThreadRepository) SetStage(ctx context.Context, threadID string, userID uuid.UUID, stage entities.ThreadStage) error {
	row := entities.ThreadProcessingStage{
		ThreadID:     threadID,
		UserID:       userID,
		CurrentStage: stage,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "thread_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_stage", "updated_at"}),
		}).
		Create(&row).Error
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
