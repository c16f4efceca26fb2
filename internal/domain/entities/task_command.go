package entities

import "github.com/google/uuid"

// TaskCommand is an outbound request for the external task runner.
// Delivery is at-least-once; consumers deduplicate on IdempotencyKey.
type TaskCommand struct {
	TaskID         string      `json:"task_id"`
	Payload        interface{} `json:"payload"`
	IdempotencyKey string      `json:"idempotency_key,omitempty"`
}

// MeetingTranscriptPayload hands a recovered transcript to the task runner
type MeetingTranscriptPayload struct {
	MeetingID            uuid.UUID `json:"meeting_id"`
	UserID               uuid.UUID `json:"user_id"`
	BotID                string    `json:"bot_id"`
	Transcript           string    `json:"transcript"`
	PersistTranscript    bool      `json:"persist_transcript"`
	RunAnalysis          bool      `json:"run_analysis"`
	RecomputeHealthScore bool      `json:"recompute_health_score"`
	DeleteMedia          bool      `json:"delete_media"`
}

// ThreadAnalysisPayload asks the task runner to analyze an email thread
type ThreadAnalysisPayload struct {
	UserID   uuid.UUID `json:"user_id"`
	ThreadID string    `json:"thread_id"`
}
