package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the lifecycle of a recorded meeting
type MeetingStatus string

const (
	MeetingStatusScheduled    MeetingStatus = "scheduled"
	MeetingStatusRecording    MeetingStatus = "recording"
	MeetingStatusCompleted    MeetingStatus = "completed"
	MeetingStatusError        MeetingStatus = "error"
	MeetingStatusNoTranscript MeetingStatus = "no_transcript" // vendor has no transcript for the bot; terminal
)

// DispatchStatus tracks whether downstream analysis consumed the transcript
type DispatchStatus string

const (
	DispatchStatusPending   DispatchStatus = "pending"
	DispatchStatusCompleted DispatchStatus = "completed"
)

// Placeholder transcripts written on terminal vendor outcomes
const (
	TranscriptPlaceholderBotFailed    = "[Transcript unavailable: recording bot failed]"
	TranscriptPlaceholderNoTranscript = "[Transcript unavailable: no transcript was produced for this recording]"
)

// Meeting is one scheduled or recorded call
type Meeting struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID                   `json:"user_id" gorm:"type:uuid;not null;index"`
	CustomerID     *uuid.UUID                  `json:"customer_id,omitempty" gorm:"type:uuid;index"`
	Title          string                      `json:"title" gorm:"type:text"`
	StartTime      time.Time                   `json:"start_time" gorm:"type:timestamptz;not null;index"`
	Status         MeetingStatus               `json:"status" gorm:"type:varchar(32);not null;default:'scheduled'"`
	DispatchStatus DispatchStatus              `json:"dispatch_status" gorm:"type:varchar(32);not null;default:'pending'"`
	Transcript     *string                     `json:"transcript,omitempty" gorm:"type:text"`
	RecallBotID    *string                     `json:"recall_bot_id,omitempty" gorm:"type:varchar(255);index"`
	Attendees      datatypes.JSONSlice[string] `json:"attendees" gorm:"type:jsonb"`
	Summary        datatypes.JSON              `json:"summary,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// HasTranscript reports whether a non-blank transcript is stored
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != nil && strings.TrimSpace(*m.Transcript) != ""
}

// NeedsDispatchRepair is true when a transcript arrived but the dispatch flag was never flipped
func (m *Meeting) NeedsDispatchRepair() bool {
	return m.HasTranscript() && m.DispatchStatus == DispatchStatusPending
}

// BotID returns the recording bot id or empty string
func (m *Meeting) BotID() string {
	if m.RecallBotID == nil {
		return ""
	}
	return *m.RecallBotID
}

// IsRecoveryCandidate mirrors the candidate query predicate in memory
func (m *Meeting) IsRecoveryCandidate(now time.Time) bool {
	if m.BotID() == "" || !m.StartTime.Before(now) || m.Status == MeetingStatusError {
		return false
	}
	return !m.HasTranscript() || m.DispatchStatus == DispatchStatusPending
}
