package recovery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/external/recall"
)

// Mode selects how much work a sweep does
type Mode string

const (
	ModeDryRun  Mode = "dry-run"
	ModeTestOne Mode = "test-one"
	ModeBatch   Mode = "batch"
)

// DefaultLimit is the batch size when the caller gives none
const DefaultLimit = 5

// IsValid reports whether the mode is recognized
func (m Mode) IsValid() bool {
	return m == ModeDryRun || m == ModeTestOne || m == ModeBatch
}

// Outcome labels how a successfully processed meeting ended
type Outcome string

const (
	OutcomeDispatchRepaired Outcome = "dispatch_repaired"
	OutcomeBotNotFound      Outcome = "bot_not_found"
	OutcomeBotFailed        Outcome = "bot_failed"
	OutcomeNoTranscript     Outcome = "no_transcript"
	OutcomeHandedOff        Outcome = "handed_off"
)

// SweepRequest is one sweep invocation
type SweepRequest struct {
	Mode      Mode
	Limit     int
	Debug     bool
	MeetingID *uuid.UUID
}

// ItemResult is a meeting the sweep finished with
type ItemResult struct {
	MeetingID uuid.UUID `json:"meeting_id"`
	Outcome   Outcome   `json:"outcome"`
	RunID     string    `json:"run_id,omitempty"`
}

// ItemError is a meeting the sweep failed on
type ItemError struct {
	MeetingID uuid.UUID `json:"meeting_id"`
	Error     string    `json:"error"`
}

// SweepResult reports what a sweep did. Dry runs fill Count and CandidateIDs only.
type SweepResult struct {
	SweepID      uuid.UUID
	Mode         Mode
	Count        int
	CandidateIDs []uuid.UUID
	Processed    int
	Successful   []ItemResult
	Failed       []uuid.UUID
	Errors       []ItemError
	APICalls     []recall.APICall
}

// VendorClient is the recording vendor surface the sweep needs
type VendorClient interface {
	GetBot(ctx context.Context, botID string) (*recall.Bot, error)
	GetTranscript(ctx context.Context, transcriptID string) (*recall.Artifact, error)
	FindTranscriptByBot(ctx context.Context, botID string) (*recall.Artifact, error)
	DownloadTranscript(ctx context.Context, downloadURL string) ([]recall.Segment, error)
	DeleteMedia(ctx context.Context, botID string) error
}

// TaskDispatcher delivers task commands to the external task runner
type TaskDispatcher interface {
	Dispatch(ctx context.Context, cmd entities.TaskCommand) (string, error)
}

// Locker guards a meeting against concurrent sweeps
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// TranscriptArchive keeps a copy of recovered transcripts
type TranscriptArchive interface {
	ArchiveTranscript(ctx context.Context, meetingID uuid.UUID, botID, transcript string) (string, error)
}

// Options tunes the sweep
type Options struct {
	AnalysisTask string
	ItemTimeout  time.Duration
	LockTTL      time.Duration
	Strategies   []recall.RefStrategy
	Now          func() time.Time
}
