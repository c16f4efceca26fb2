package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// NextStepRepository handles next step data operations
type NextStepRepository struct {
	db *gorm.DB
}

// NewNextStepRepository creates a new next step repository
func NewNextStepRepository(db *gorm.DB) *NextStepRepository {
	return &NextStepRepository{db: db}
}

var _ repositories.NextStepRepository = (*NextStepRepository)(nil)

// ExistsOpen checks the (company, text, source, status=todo) dedup key
func (r *NextStepRepository) ExistsOpen(ctx context.Context, key repositories.NextStepKey) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.NextStep{}).
		Where("company_id = ?", key.CompanyID).
		Where("description = ?", key.Description).
		Where("source_type = ? AND source_id = ?", key.SourceType, key.SourceID).
		Where("status = ?", entities.NextStepStatusTodo).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a next step
func (r *NextStepRepository) Create(ctx context.Context, step *entities.NextStep) error {
	if step == nil {
		return errors.New("next step cannot be nil")
	}
	return r.db.WithContext(ctx).Create(step).Error
}

// CreateAssignment inserts an assignment, ignoring an existing (step, customer) pair
func (r *NextStepRepository) CreateAssignment(ctx context.Context, a *entities.NextStepAssignment) error {
	if a == nil {
		return errors.New("assignment cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a).Error
}
