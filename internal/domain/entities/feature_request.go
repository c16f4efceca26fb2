package entities

import (
	"time"

	"github.com/google/uuid"
)

// FeatureUrgency is how pressing a customer says a feature request is
type FeatureUrgency string

const (
	FeatureUrgencyLow    FeatureUrgency = "Low"
	FeatureUrgencyMedium FeatureUrgency = "Medium"
	FeatureUrgencyHigh   FeatureUrgency = "High"
)

// NormalizeFeatureUrgency maps anything but the exact levels to Low
func NormalizeFeatureUrgency(u string) FeatureUrgency {
	switch FeatureUrgency(u) {
	case FeatureUrgencyLow, FeatureUrgencyMedium, FeatureUrgencyHigh:
		return FeatureUrgency(u)
	default:
		return FeatureUrgencyLow
	}
}

// FeatureRequestStatusNew is the status of a freshly extracted request
const FeatureRequestStatusNew = "new"

// FeatureRequest is a product ask a customer raised in a thread
type FeatureRequest struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ThreadID            string         `json:"thread_id" gorm:"type:text;not null;index"`
	UserID              uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Title               string         `json:"title" gorm:"type:text;not null"`
	CustomerDescription *string        `json:"customer_description,omitempty" gorm:"type:text"`
	UseCase             *string        `json:"use_case,omitempty" gorm:"type:text"`
	Urgency             FeatureUrgency `json:"urgency" gorm:"type:varchar(16);not null;default:'Low'"`
	UrgencySignals      *string        `json:"urgency_signals,omitempty" gorm:"type:text"`
	CustomerImpact      *string        `json:"customer_impact,omitempty" gorm:"type:text"`
	Status              string         `json:"status" gorm:"type:varchar(16);not null;default:'new'"`
	CreatedAt           time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (FeatureRequest) TableName() string {
	return "feature_requests"
}

// ExtractedFeatureRequest is a raw feature request read from an LLM summary
type ExtractedFeatureRequest struct {
	Title               string
	CustomerDescription *string
	UseCase             *string
	Urgency             FeatureUrgency
	UrgencySignals      *string
	CustomerImpact      *string
}
