package entities

import (
	"time"

	"github.com/google/uuid"
)

// SourceType identifies where a next step was extracted from
type SourceType string

const (
	SourceTypeThread  SourceType = "thread"
	SourceTypeMeeting SourceType = "meeting"
)

// IsValid reports whether the source type is one of the recognized values
func (s SourceType) IsValid() bool {
	return s == SourceTypeThread || s == SourceTypeMeeting
}

// NextStepPriority represents action item urgency
type NextStepPriority string

const (
	PriorityHigh   NextStepPriority = "high"
	PriorityMedium NextStepPriority = "medium"
	PriorityLow    NextStepPriority = "low"
)

// NormalizePriority maps unknown priorities to medium
func NormalizePriority(p string) NextStepPriority {
	switch NextStepPriority(p) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return NextStepPriority(p)
	default:
		return PriorityMedium
	}
}

// NextStepStatus represents action item progress
type NextStepStatus string

const (
	NextStepStatusTodo       NextStepStatus = "todo"
	NextStepStatusInProgress NextStepStatus = "in_progress"
	NextStepStatusBlocked    NextStepStatus = "blocked"
	NextStepStatusDone       NextStepStatus = "done"
)

// NextStep is one action item extracted from a thread or meeting summary
type NextStep struct {
	StepID               uuid.UUID        `json:"step_id" gorm:"column:step_id;type:uuid;primary_key;default:gen_random_uuid()"`
	UserID               uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	CompanyID            uuid.UUID        `json:"company_id" gorm:"type:uuid;not null;index"`
	ThreadID             *string          `json:"thread_id,omitempty" gorm:"type:text;index"`
	MeetingID            *uuid.UUID       `json:"meeting_id,omitempty" gorm:"type:uuid;index"`
	SourceType           SourceType       `json:"source_type" gorm:"type:varchar(16);not null"`
	SourceID             string           `json:"source_id" gorm:"type:text;not null"`
	Description          string           `json:"description" gorm:"type:text;not null"`
	Owner                *string          `json:"owner,omitempty" gorm:"type:text"`
	DueDate              *time.Time       `json:"due_date,omitempty" gorm:"type:timestamptz"`
	Priority             NextStepPriority `json:"priority" gorm:"type:varchar(16);not null;default:'medium'"`
	Status               NextStepStatus   `json:"status" gorm:"type:varchar(16);not null;default:'todo'"`
	RequestedByContactID *uuid.UUID       `json:"requested_by_contact_id,omitempty" gorm:"type:uuid"`
	AssignedToUserID     *uuid.UUID       `json:"assigned_to_user_id,omitempty" gorm:"type:uuid"`
	CreatedAt            time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (NextStep) TableName() string {
	return "next_steps"
}

// NextStepAssignment links a next step to one external customer contact
type NextStepAssignment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	NextStepID uuid.UUID `json:"next_step_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_step_customer"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_step_customer"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (NextStepAssignment) TableName() string {
	return "next_step_assignments"
}

// ExtractedStep is a raw next step read from an LLM summary before resolution
type ExtractedStep struct {
	Text     string
	Owner    *string
	DueDate  *time.Time
	Priority NextStepPriority
}
