package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// FeatureRequestRepository handles feature request data operations
type FeatureRequestRepository struct {
	db *gorm.DB
}

// NewFeatureRequestRepository creates a new feature request repository
func NewFeatureRequestRepository(db *gorm.DB) *FeatureRequestRepository {
	return &FeatureRequestRepository{db: db}
}

var _ repositories.FeatureRequestRepository = (*FeatureRequestRepository)(nil)

func (r *FeatureRequestRepository) titleQuery(ctx context.Context, threadID, title string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.FeatureRequest{}).
		Where("thread_id = ?", threadID).
		Where("lower(btrim(title)) = ?", strings.ToLower(strings.TrimSpace(title)))
}

// ExistsTitle matches titles case-insensitively within one thread
func (r *FeatureRequestRepository) ExistsTitle(ctx context.Context, threadID, title string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, nil
	}
	var count int64
	if err := r.titleQuery(ctx, threadID, title).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a feature request
func (r *FeatureRequestRepository) Create(ctx context.Context, fr *entities.FeatureRequest) error {
	if fr == nil {
		return errors.New("feature request cannot be nil")
	}
	return r.db.WithContext(ctx).Create(fr).Error
}
