package recovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	domainrepo "github.com/johnquangdev/customer-pulse/internal/domain/repositories"
	"github.com/johnquangdev/customer-pulse/internal/infrastructure/external/recall"
	"github.com/johnquangdev/customer-pulse/pkg/jobcontext"
)

const jobTypeRecovery = "transcript_recovery"

// Service defines transcript recovery operations
type Service interface {
	Sweep(ctx context.Context, req SweepRequest) (*SweepResult, error)
	HandleBotEvent(ctx context.Context, botID string) (*SweepResult, error)
	StartScheduler(ctx context.Context, interval time.Duration, limit int) error
	StopScheduler() error
}

type recoveryService struct {
	meetings   domainrepo.MeetingRepository
	vendor     VendorClient
	dispatcher TaskDispatcher
	locker     Locker
	archive    TranscriptArchive
	opts       Options
	logger     *zap.Logger

	schedulerStopChan  chan struct{}
	schedulerWg        sync.WaitGroup
	isSchedulerRunning bool
	schedulerMutex     sync.Mutex
}

// NewService constructs the recovery service. locker and archive may be nil.
func NewService(
	meetings domainrepo.MeetingRepository,
	vendor VendorClient,
	dispatcher TaskDispatcher,
	locker Locker,
	archive TranscriptArchive,
	opts Options,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.AnalysisTask == "" {
		opts.AnalysisTask = "process-meeting-transcript"
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}
	if len(opts.Strategies) == 0 {
		opts.Strategies = recall.DefaultRefStrategies
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &recoveryService{
		meetings:   meetings,
		vendor:     vendor,
		dispatcher: dispatcher,
		locker:     locker,
		archive:    archive,
		opts:       opts,
		logger:     logger,
	}
}

// Sweep finds recovery candidates and, unless dry-running, processes them one at a time.
// Per-meeting failures are collected in the result; only candidate lookup errors abort.
func (s *recoveryService) Sweep(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	if !req.Mode.IsValid() {
		return nil, entities.ErrInvalidSweepMode
	}

	filter := domainrepo.CandidateFilter{
		Now:       s.opts.Now().UTC(),
		MeetingID: req.MeetingID,
	}
	switch req.Mode {
	case ModeTestOne:
		filter.Limit = 1
	case ModeBatch:
		filter.Limit = req.Limit
		if filter.Limit <= 0 {
			filter.Limit = DefaultLimit
		}
	}

	candidates, err := s.meetings.ListRecoveryCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recovery candidates: %w", err)
	}

	result := &SweepResult{
		SweepID:    uuid.New(),
		Mode:       req.Mode,
		Successful: []ItemResult{},
		Failed:     []uuid.UUID{},
		Errors:     []ItemError{},
	}

	if req.Mode == ModeDryRun {
		result.Count = len(candidates)
		result.CandidateIDs = make([]uuid.UUID, 0, len(candidates))
		for _, m := range candidates {
			result.CandidateIDs = append(result.CandidateIDs, m.ID)
		}
		s.logger.Info("🔍 Recovery dry run",
			zap.String("sweep_id", result.SweepID.String()),
			zap.Int("candidates", result.Count),
		)
		return result, nil
	}

	var recorder *recall.CallRecorder
	if req.Debug {
		recorder = recall.NewCallRecorder()
		ctx = recall.WithRecorder(ctx, recorder)
	}

	s.logger.Info("🚀 Recovery sweep started",
		zap.String("sweep_id", result.SweepID.String()),
		zap.String("mode", string(req.Mode)),
		zap.Int("candidates", len(candidates)),
	)

	for i := range candidates {
		meeting := candidates[i]
		item, err := s.processCandidate(ctx, result.SweepID, &meeting)
		result.Processed++
		if err != nil {
			result.Failed = append(result.Failed, meeting.ID)
			result.Errors = append(result.Errors, ItemError{MeetingID: meeting.ID, Error: err.Error()})
			s.logger.Error("❌ Transcript recovery failed",
				zap.String("sweep_id", result.SweepID.String()),
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("bot_id", meeting.BotID()),
				zap.Error(err),
			)
			continue
		}
		result.Successful = append(result.Successful, item)
	}

	if recorder != nil {
		result.APICalls = recorder.Calls()
	}

	s.logger.Info("✅ Recovery sweep finished",
		zap.String("sweep_id", result.SweepID.String()),
		zap.Int("processed", result.Processed),
		zap.Int("successful", len(result.Successful)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// HandleBotEvent runs a single-meeting sweep for the meeting recorded by botID
func (s *recoveryService) HandleBotEvent(ctx context.Context, botID string) (*SweepResult, error) {
	meeting, err := s.meetings.FindByBotID(ctx, botID)
	if err != nil {
		return nil, fmt.Errorf("find meeting for bot %s: %w", botID, err)
	}
	if meeting == nil {
		return nil, entities.ErrMeetingNotFound
	}
	return s.Sweep(ctx, SweepRequest{Mode: ModeTestOne, MeetingID: &meeting.ID})
}

// processCandidate guards one meeting with the sweep lock and a bounded job context
func (s *recoveryService) processCandidate(ctx context.Context, sweepID uuid.UUID, meeting *entities.Meeting) (ItemResult, error) {
	if s.locker != nil {
		key := "sweep:meeting:" + meeting.ID.String()
		acquired, err := s.locker.Acquire(ctx, key, s.opts.LockTTL)
		switch {
		case err != nil:
			s.logger.Warn("⚠️ Sweep lock unavailable, continuing without it",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err),
			)
		case !acquired:
			return ItemResult{}, entities.ErrMeetingLocked
		default:
			defer func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), key); err != nil {
					s.logger.Warn("⚠️ Failed to release sweep lock",
						zap.String("meeting_id", meeting.ID.String()),
						zap.Error(err),
					)
				}
			}()
		}
	}

	itemCtx, cancel := jobcontext.JobBegin(ctx, sweepID, jobTypeRecovery, meeting.ID.String(), s.opts.ItemTimeout)
	defer cancel()

	var item ItemResult
	err := jobcontext.Run(itemCtx, func(ctx context.Context) error {
		var err error
		item, err = s.recoverMeeting(ctx, meeting)
		return err
	})
	return item, err
}

// recoverMeeting is the per-candidate algorithm. Terminal vendor outcomes are
// written to the meeting and reported as handled, not as failures.
func (s *recoveryService) recoverMeeting(ctx context.Context, meeting *entities.Meeting) (ItemResult, error) {
	item := ItemResult{MeetingID: meeting.ID}

	if meeting.NeedsDispatchRepair() {
		if err := s.meetings.MarkDispatchCompleted(ctx, meeting.ID); err != nil {
			return item, fmt.Errorf("mark dispatch completed: %w", err)
		}
		item.Outcome = OutcomeDispatchRepaired
		return item, nil
	}

	botID := meeting.BotID()
	bot, err := s.vendor.GetBot(ctx, botID)
	if err != nil {
		if errors.Is(err, recall.ErrNotFound) {
			if err := s.meetings.MarkTerminal(ctx, meeting.ID, entities.MeetingStatusError, nil); err != nil {
				return item, fmt.Errorf("mark meeting error: %w", err)
			}
			item.Outcome = OutcomeBotNotFound
			return item, nil
		}
		return item, fmt.Errorf("get bot status: %w", err)
	}

	if bot.IsFatal() {
		placeholder := entities.TranscriptPlaceholderBotFailed
		if err := s.meetings.MarkTerminal(ctx, meeting.ID, entities.MeetingStatusError, &placeholder); err != nil {
			return item, fmt.Errorf("mark meeting error: %w", err)
		}
		s.deleteMediaBestEffort(ctx, botID)
		item.Outcome = OutcomeBotFailed
		return item, nil
	}

	downloadURL, err := s.locateTranscript(ctx, bot, botID)
	if err != nil {
		if errors.Is(err, recall.ErrNotFound) {
			placeholder := entities.TranscriptPlaceholderNoTranscript
			if err := s.meetings.MarkTerminal(ctx, meeting.ID, entities.MeetingStatusNoTranscript, &placeholder); err != nil {
				return item, fmt.Errorf("mark meeting no transcript: %w", err)
			}
			s.deleteMediaBestEffort(ctx, botID)
			item.Outcome = OutcomeNoTranscript
			return item, nil
		}
		return item, err
	}

	segments, err := s.vendor.DownloadTranscript(ctx, downloadURL)
	if err != nil {
		return item, fmt.Errorf("download transcript: %w", err)
	}

	transcript := recall.FormatTranscript(segments)
	if chars := utf8.RuneCountInString(transcript); chars < recall.MinTranscriptLength {
		return item, fmt.Errorf("%w (%d chars)", entities.ErrTranscriptTooShort, chars)
	}

	s.archiveBestEffort(ctx, meeting.ID, botID, transcript)

	runID, err := s.dispatcher.Dispatch(ctx, entities.TaskCommand{
		TaskID:         s.opts.AnalysisTask,
		IdempotencyKey: fmt.Sprintf("meeting-transcript:%s:%s", meeting.ID, botID),
		Payload: entities.MeetingTranscriptPayload{
			MeetingID:            meeting.ID,
			UserID:               meeting.UserID,
			BotID:                botID,
			Transcript:           transcript,
			PersistTranscript:    true,
			RunAnalysis:          true,
			RecomputeHealthScore: true,
			DeleteMedia:          true,
		},
	})
	if err != nil {
		return item, fmt.Errorf("hand off transcript: %w", err)
	}

	s.logger.Info("✅ Transcript recovered and handed off", append(itemFields(ctx),
		zap.String("bot_id", botID),
		zap.String("run_id", runID),
		zap.Int("transcript_length", utf8.RuneCountInString(transcript)),
	)...)

	item.Outcome = OutcomeHandedOff
	item.RunID = runID
	return item, nil
}

// locateTranscript resolves a download URL from the bot payload, falling back to the
// transcript metadata endpoint. A vendor 404 is returned as recall.ErrNotFound.
func (s *recoveryService) locateTranscript(ctx context.Context, bot *recall.Bot, botID string) (string, error) {
	ref, _ := recall.ResolveTranscriptRef(bot, s.opts.Strategies)
	if ref.DownloadURL != "" {
		return ref.DownloadURL, nil
	}

	var (
		artifact *recall.Artifact
		err      error
	)
	if ref.TranscriptID != "" {
		artifact, err = s.vendor.GetTranscript(ctx, ref.TranscriptID)
	} else {
		artifact, err = s.vendor.FindTranscriptByBot(ctx, botID)
	}
	if err != nil {
		if errors.Is(err, recall.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("get transcript metadata: %w", err)
	}

	if u := artifact.DownloadURL(); u != "" {
		return u, nil
	}
	return "", fmt.Errorf("%w: transcript %s has no download url yet", entities.ErrNoTranscriptRef, artifact.ID)
}

func (s *recoveryService) deleteMediaBestEffort(ctx context.Context, botID string) {
	if err := s.vendor.DeleteMedia(ctx, botID); err != nil {
		s.logger.Warn("⚠️ Failed to delete vendor media", append(itemFields(ctx),
			zap.String("bot_id", botID),
			zap.Error(err),
		)...)
	}
}

func (s *recoveryService) archiveBestEffort(ctx context.Context, meetingID uuid.UUID, botID, transcript string) {
	if s.archive == nil {
		return
	}
	object, err := s.archive.ArchiveTranscript(ctx, meetingID, botID, transcript)
	if err != nil {
		s.logger.Warn("⚠️ Failed to archive transcript", append(itemFields(ctx), zap.Error(err))...)
		return
	}
	s.logger.Debug("transcript archived", append(itemFields(ctx), zap.String("object", object))...)
}

// itemFields turns the job metadata of an item context into log fields
func itemFields(ctx context.Context) []zap.Field {
	meta := jobcontext.GetJobMetadata(ctx)
	fields := make([]zap.Field, 0, 4)
	if meta.JobID != uuid.Nil {
		fields = append(fields, zap.String("sweep_id", meta.JobID.String()))
	}
	if meta.JobType != "" {
		fields = append(fields, zap.String("job_type", meta.JobType))
	}
	if meta.ItemID != "" {
		fields = append(fields, zap.String("meeting_id", meta.ItemID))
	}
	if !meta.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(meta.StartTime)))
	}
	return fields
}
