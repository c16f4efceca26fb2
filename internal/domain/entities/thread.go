package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ThreadStage is the processing stage of an email thread
type ThreadStage string

const (
	ThreadStageResolvingEntities ThreadStage = "resolving_entities"
	ThreadStageQueued            ThreadStage = "queued"
	ThreadStageAnalyzing         ThreadStage = "analyzing"
	ThreadStageCompleted         ThreadStage = "completed"
	ThreadStageFailed            ThreadStage = "failed"
)

// Thread is an email conversation owned by one user
type Thread struct {
	ThreadID   string         `json:"thread_id" gorm:"column:thread_id;type:text;primary_key"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject    string         `json:"subject" gorm:"type:text"`
	LLMSummary datatypes.JSON `json:"llm_summary,omitempty" gorm:"column:llm_summary;type:jsonb"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Thread) TableName() string {
	return "threads"
}

// ThreadMessage is one email within a thread
type ThreadMessage struct {
	MessageID   string                      `json:"message_id" gorm:"column:message_id;type:text;primary_key"`
	ThreadID    string                      `json:"thread_id" gorm:"type:text;not null;index"`
	UserID      uuid.UUID                   `json:"user_id" gorm:"type:uuid;not null"`
	FromAddress string                      `json:"from_address" gorm:"type:text"`
	ToAddresses datatypes.JSONSlice[string] `json:"to_addresses" gorm:"type:jsonb"`
	CcAddresses datatypes.JSONSlice[string] `json:"cc_addresses" gorm:"type:jsonb"`
	SentAt      *time.Time                  `json:"sent_at,omitempty" gorm:"type:timestamptz"`
}

// TableName specifies the table name for GORM
func (ThreadMessage) TableName() string {
	return "thread_messages"
}

// ThreadParticipant joins a thread to either a customer or an internal profile
type ThreadParticipant struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ThreadID   string     `json:"thread_id" gorm:"type:text;not null;index"`
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;not null"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty" gorm:"type:uuid"`
	ProfileID  *uuid.UUID `json:"profile_id,omitempty" gorm:"type:uuid"`
}

// TableName specifies the table name for GORM
func (ThreadParticipant) TableName() string {
	return "thread_participants"
}

// ThreadCompanyLink joins a thread to a company
type ThreadCompanyLink struct {
	ThreadID  string    `json:"thread_id" gorm:"type:text;primary_key"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
}

// TableName specifies the table name for GORM
func (ThreadCompanyLink) TableName() string {
	return "thread_company_link"
}

// ThreadProcessingStage records where a thread is in the pipeline
type ThreadProcessingStage struct {
	ThreadID     string      `json:"thread_id" gorm:"type:text;primary_key"`
	UserID       uuid.UUID   `json:"user_id" gorm:"type:uuid;not null"`
	CurrentStage ThreadStage `json:"current_stage" gorm:"type:varchar(32);not null"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ThreadProcessingStage) TableName() string {
	return "thread_processing_stages"
}
