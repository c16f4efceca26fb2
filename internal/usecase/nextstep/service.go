package nextstep

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	domainrepo "github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// Service defines next step extraction operations
type Service interface {
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResult, error)
}

// ExtractRequest names the summarized source to extract from
type ExtractRequest struct {
	SourceType entities.SourceType
	SourceID   string
}

// ExtractResult reports what extraction created
type ExtractResult struct {
	// NoCompany is set when the source is not linked to any company and no next step was written
	NoCompany         bool
	Extracted         int
	NextStepsCount    int
	CompaniesCount    int
	SkippedDuplicates int
	AssignmentsCount  int

	// feature requests are thread scoped and written with or without a company
	FeatureRequestsCount   int
	SkippedFeatureRequests int
}

// source is a loaded thread or meeting, normalized for extraction
type source struct {
	userID       uuid.UUID
	summary      []byte
	participants []entities.Participant
	requesterID  *uuid.UUID
	companyIDs   []uuid.UUID
	threadID     *string
	meetingID    *uuid.UUID
}

type nextStepService struct {
	meetings  domainrepo.MeetingRepository
	threads   domainrepo.ThreadRepository
	directory domainrepo.DirectoryRepository
	nextSteps domainrepo.NextStepRepository
	features  domainrepo.FeatureRequestRepository
	resolver  OwnerResolver
	logger    *zap.Logger
}

// NewService creates the extraction service. A nil resolver uses SubstringResolver;
// a nil features repository turns feature request extraction off.
func NewService(
	meetings domainrepo.MeetingRepository,
	threads domainrepo.ThreadRepository,
	directory domainrepo.DirectoryRepository,
	nextSteps domainrepo.NextStepRepository,
	features domainrepo.FeatureRequestRepository,
	resolver OwnerResolver,
	logger *zap.Logger,
) Service {
	if resolver == nil {
		resolver = SubstringResolver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &nextStepService{
		meetings:  meetings,
		threads:   threads,
		directory: directory,
		nextSteps: nextSteps,
		features:  features,
		resolver:  resolver,
		logger:    logger,
	}
}

// Extract turns a summary's next steps into deduplicated action items per company.
// Only loading the source and its owner is fatal; every later step degrades.
func (s *nextStepService) Extract(ctx context.Context, req ExtractRequest) (*ExtractResult, error) {
	sourceID := strings.TrimSpace(req.SourceID)
	if sourceID == "" {
		return nil, fmt.Errorf("%w: source_id is required", entities.ErrInvalidRequest)
	}
	if !req.SourceType.IsValid() {
		return nil, entities.ErrInvalidSourceType
	}

	var (
		src *source
		err error
	)
	switch req.SourceType {
	case entities.SourceTypeThread:
		src, err = s.loadThread(ctx, sourceID)
	case entities.SourceTypeMeeting:
		src, err = s.loadMeeting(ctx, sourceID)
	}
	if err != nil {
		return nil, err
	}

	log := s.logger.With(
		zap.String("source_type", string(req.SourceType)),
		zap.String("source_id", sourceID),
	)

	steps := ParseSummary(src.summary)
	result := &ExtractResult{Extracted: len(steps), CompaniesCount: len(src.companyIDs)}

	if src.threadID != nil && s.features != nil {
		s.insertFeatureRequests(ctx, src, result, log)
	}

	if len(src.companyIDs) == 0 {
		log.Info("⏭️ No company linked, skipping next step insert", zap.Int("extracted", len(steps)))
		result.NoCompany = true
		s.markThreadCompleted(ctx, src)
		return result, nil
	}

	internal, external := splitParticipants(src.participants)

	for _, companyID := range src.companyIDs {
		for _, step := range steps {
			key := domainrepo.NextStepKey{
				CompanyID:   companyID,
				Description: step.Text,
				SourceType:  req.SourceType,
				SourceID:    sourceID,
			}
			exists, err := s.nextSteps.ExistsOpen(ctx, key)
			if err != nil {
				// the open-step unique index still rejects a real duplicate
				log.Warn("⚠️ Duplicate check failed, inserting anyway",
					zap.String("company_id", companyID.String()),
					zap.Error(err),
				)
				exists = false
			}
			if exists {
				result.SkippedDuplicates++
				log.Debug("skipping duplicate next step", zap.String("description", truncate(step.Text, 50)))
				continue
			}

			row := &entities.NextStep{
				UserID:               src.userID,
				CompanyID:            companyID,
				ThreadID:             src.threadID,
				MeetingID:            src.meetingID,
				SourceType:           req.SourceType,
				SourceID:             sourceID,
				Description:          step.Text,
				Owner:                step.Owner,
				DueDate:              step.DueDate,
				Priority:             step.Priority,
				Status:               entities.NextStepStatusTodo,
				RequestedByContactID: src.requesterID,
				AssignedToUserID:     s.resolveOwner(step.Owner, internal, src.userID),
			}
			if err := s.nextSteps.Create(ctx, row); err != nil {
				log.Error("❌ Failed to insert next step",
					zap.String("company_id", companyID.String()),
					zap.Error(err),
				)
				continue
			}
			result.NextStepsCount++

			for _, customerID := range external {
				assignment := &entities.NextStepAssignment{NextStepID: row.StepID, CustomerID: customerID}
				if err := s.nextSteps.CreateAssignment(ctx, assignment); err != nil {
					log.Warn("⚠️ Failed to create next step assignment",
						zap.String("next_step_id", row.StepID.String()),
						zap.String("customer_id", customerID.String()),
						zap.Error(err),
					)
					continue
				}
				result.AssignmentsCount++
			}
		}
	}

	if result.NextStepsCount > 0 {
		for _, companyID := range src.companyIDs {
			if err := s.directory.RecalculateHealthScore(ctx, companyID); err != nil {
				log.Warn("⚠️ Health score recalculation failed",
					zap.String("company_id", companyID.String()),
					zap.Error(err),
				)
			}
		}
	}

	s.markThreadCompleted(ctx, src)

	log.Info("✅ Next steps extracted",
		zap.Int("extracted", result.Extracted),
		zap.Int("inserted", result.NextStepsCount),
		zap.Int("duplicates", result.SkippedDuplicates),
		zap.Int("companies", result.CompaniesCount),
		zap.Int("feature_requests", result.FeatureRequestsCount),
	)
	return result, nil
}

// insertFeatureRequests stores the summary's feature requests on the thread,
// skipping titles the thread already has
func (s *nextStepService) insertFeatureRequests(ctx context.Context, src *source, result *ExtractResult, log *zap.Logger) {
	threadID := *src.threadID
	seen := make(map[string]bool)
	for _, fr := range ParseFeatureRequests(src.summary) {
		titleKey := strings.ToLower(fr.Title)
		if seen[titleKey] {
			result.SkippedFeatureRequests++
			continue
		}
		seen[titleKey] = true

		exists, err := s.features.ExistsTitle(ctx, threadID, fr.Title)
		if err != nil {
			log.Warn("⚠️ Feature request duplicate check failed, inserting anyway",
				zap.String("title", truncate(fr.Title, 50)),
				zap.Error(err),
			)
			exists = false
		}
		if exists {
			result.SkippedFeatureRequests++
			log.Debug("skipping duplicate feature request", zap.String("title", truncate(fr.Title, 50)))
			continue
		}

		row := &entities.FeatureRequest{
			ThreadID:            threadID,
			UserID:              src.userID,
			Title:               fr.Title,
			CustomerDescription: fr.CustomerDescription,
			UseCase:             fr.UseCase,
			Urgency:             fr.Urgency,
			UrgencySignals:      fr.UrgencySignals,
			CustomerImpact:      fr.CustomerImpact,
			Status:              entities.FeatureRequestStatusNew,
		}
		if err := s.features.Create(ctx, row); err != nil {
			log.Error("❌ Failed to insert feature request",
				zap.String("title", truncate(fr.Title, 50)),
				zap.Error(err),
			)
			continue
		}
		result.FeatureRequestsCount++
	}
}

func (s *nextStepService) loadThread(ctx context.Context, threadID string) (*source, error) {
	thread, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load thread %s: %w", threadID, err)
	}
	if thread == nil {
		return nil, entities.ErrThreadNotFound
	}
	if thread.UserID == uuid.Nil {
		return nil, entities.ErrMissingOwner
	}

	src := &source{
		userID:   thread.UserID,
		summary:  thread.LLMSummary,
		threadID: &thread.ThreadID,
	}

	participants, err := s.threads.ListParticipants(ctx, threadID)
	if err != nil {
		s.logger.Warn("⚠️ Failed to load thread participants", zap.String("thread_id", threadID), zap.Error(err))
	}
	src.participants = participants
	src.requesterID = firstCustomerID(participants)

	companyIDs, err := s.threads.ListLinkedCompanyIDs(ctx, threadID)
	if err != nil {
		s.logger.Warn("⚠️ Failed to load thread companies", zap.String("thread_id", threadID), zap.Error(err))
	}
	src.companyIDs = companyIDs

	return src, nil
}

func (s *nextStepService) loadMeeting(ctx context.Context, rawID string) (*source, error) {
	meetingID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, entities.ErrMeetingNotFound
	}
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("load meeting %s: %w", meetingID, err)
	}
	if meeting == nil {
		return nil, entities.ErrMeetingNotFound
	}
	if meeting.UserID == uuid.Nil {
		return nil, entities.ErrMissingOwner
	}

	src := &source{
		userID:    meeting.UserID,
		summary:   meeting.Summary,
		meetingID: &meeting.ID,
	}
	src.participants = s.resolveAttendees(ctx, meeting.UserID, meeting.Attendees)

	src.requesterID = firstCustomerID(src.participants)
	if src.requesterID == nil {
		src.requesterID = meeting.CustomerID
	}

	if meeting.CustomerID != nil {
		customer, err := s.directory.FindCustomer(ctx, *meeting.CustomerID)
		switch {
		case err != nil:
			s.logger.Warn("⚠️ Failed to load meeting customer", zap.String("meeting_id", meeting.ID.String()), zap.Error(err))
		case customer != nil && customer.CompanyID != nil:
			src.companyIDs = []uuid.UUID{*customer.CompanyID}
		}
	}

	return src, nil
}

// resolveAttendees matches attendee emails against customers and internal profiles
func (s *nextStepService) resolveAttendees(ctx context.Context, userID uuid.UUID, attendees []string) []entities.Participant {
	emails := make([]string, 0, len(attendees))
	for _, a := range attendees {
		if e := strings.ToLower(strings.TrimSpace(a)); e != "" {
			emails = append(emails, e)
		}
	}
	if len(emails) == 0 {
		return nil
	}

	customers, err := s.directory.FindCustomersByEmails(ctx, userID, emails)
	if err != nil {
		s.logger.Warn("⚠️ Failed to resolve attendee customers", zap.Error(err))
	}
	profiles, err := s.directory.FindProfilesByEmails(ctx, emails)
	if err != nil {
		s.logger.Warn("⚠️ Failed to resolve attendee profiles", zap.Error(err))
	}

	byCustomer := make(map[string]entities.Customer, len(customers))
	for _, c := range customers {
		byCustomer[strings.ToLower(c.Email)] = c
	}
	byProfile := make(map[string]entities.Profile, len(profiles))
	for _, p := range profiles {
		byProfile[strings.ToLower(p.Email)] = p
	}

	participants := make([]entities.Participant, 0, len(emails))
	for _, email := range emails {
		p := entities.Participant{Email: email}
		if c, ok := byCustomer[email]; ok {
			id := c.CustomerID
			p.CustomerID = &id
			p.Name = c.FullName
		}
		if prof, ok := byProfile[email]; ok {
			id := prof.ID
			p.ProfileID = &id
			if p.Name == "" {
				p.Name = prof.FullName
			}
		}
		participants = append(participants, p)
	}
	return participants
}

// resolveOwner returns the matched internal participant's user id, else the owning user
func (s *nextStepService) resolveOwner(owner *string, internal []entities.Participant, fallback uuid.UUID) *uuid.UUID {
	assigned := fallback
	if owner != nil {
		if match, ok := s.resolver.Resolve(*owner, internal); ok && match.ProfileID != nil {
			assigned = *match.ProfileID
		}
	}
	return &assigned
}

func (s *nextStepService) markThreadCompleted(ctx context.Context, src *source) {
	if src.threadID == nil {
		return
	}
	if err := s.threads.SetStage(ctx, *src.threadID, src.userID, entities.ThreadStageCompleted); err != nil {
		s.logger.Warn("⚠️ Failed to update thread stage", zap.String("thread_id", *src.threadID), zap.Error(err))
	}
}

// splitParticipants returns internal participants in order and distinct external customer ids
func splitParticipants(participants []entities.Participant) ([]entities.Participant, []uuid.UUID) {
	var internal []entities.Participant
	var external []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, p := range participants {
		if p.IsInternal() {
			internal = append(internal, p)
		}
		if p.IsExternal() && !seen[*p.CustomerID] {
			seen[*p.CustomerID] = true
			external = append(external, *p.CustomerID)
		}
	}
	return internal, external
}

func firstCustomerID(participants []entities.Participant) *uuid.UUID {
	for _, p := range participants {
		if p.CustomerID != nil {
			id := *p.CustomerID
			return &id
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
