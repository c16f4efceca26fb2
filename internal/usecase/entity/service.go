package entity

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	domainrepo "github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// TaskDispatcher delivers task commands to the external task runner
type TaskDispatcher interface {
	Dispatch(ctx context.Context, cmd entities.TaskCommand) (string, error)
}

// Service resolves the companies and customers behind an email thread
type Service interface {
	ResolveThreadEntities(ctx context.Context, userID uuid.UUID, threadID string) (*ResolveResult, error)
}

// ResolveResult summarizes one resolution run
type ResolveResult struct {
	ThreadID         string
	Companies        []uuid.UUID
	Customers        []uuid.UUID
	CompaniesCreated int
	CustomersCreated int
	Errors           []string
	RunID            string
}

type entityService struct {
	threads    domainrepo.ThreadRepository
	directory  domainrepo.DirectoryRepository
	dispatcher TaskDispatcher
	threadTask string
	logger     *zap.Logger
}

// NewService creates the thread entity resolver. threadTask is the analysis task queued afterwards.
func NewService(
	threads domainrepo.ThreadRepository,
	directory domainrepo.DirectoryRepository,
	dispatcher TaskDispatcher,
	threadTask string,
	logger *zap.Logger,
) Service {
	if threadTask == "" {
		threadTask = "analyze-thread"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &entityService{
		threads:    threads,
		directory:  directory,
		dispatcher: dispatcher,
		threadTask: threadTask,
		logger:     logger,
	}
}

// ResolveThreadEntities links every business participant of a thread to a customer and company,
// then queues the thread for analysis. Per-address failures are collected, not fatal.
func (s *entityService) ResolveThreadEntities(ctx context.Context, userID uuid.UUID, threadID string) (*ResolveResult, error) {
	thread, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load thread %s: %w", threadID, err)
	}
	if thread == nil || thread.UserID != userID {
		return nil, entities.ErrThreadNotFound
	}

	log := s.logger.With(zap.String("thread_id", threadID), zap.String("user_id", userID.String()))
	s.setStage(ctx, log, threadID, userID, entities.ThreadStageResolvingEntities)

	result, err := s.resolve(ctx, log, userID, threadID)
	if err != nil {
		s.setStage(ctx, log, threadID, userID, entities.ThreadStageFailed)
		return nil, err
	}

	s.setStage(ctx, log, threadID, userID, entities.ThreadStageQueued)

	runID, err := s.dispatcher.Dispatch(ctx, entities.TaskCommand{
		TaskID:         s.threadTask,
		IdempotencyKey: fmt.Sprintf("%s:%s", s.threadTask, threadID),
		Payload:        entities.ThreadAnalysisPayload{UserID: userID, ThreadID: threadID},
	})
	if err != nil {
		s.setStage(ctx, log, threadID, userID, entities.ThreadStageFailed)
		return nil, fmt.Errorf("queue thread analysis: %w", err)
	}
	result.RunID = runID

	log.Info("✅ Thread entities resolved",
		zap.Int("companies", len(result.Companies)),
		zap.Int("customers", len(result.Customers)),
		zap.Int("companies_created", result.CompaniesCreated),
		zap.Int("customers_created", result.CustomersCreated),
		zap.String("run_id", runID),
	)
	return result, nil
}

func (s *entityService) resolve(ctx context.Context, log *zap.Logger, userID uuid.UUID, threadID string) (*ResolveResult, error) {
	messages, err := s.threads.ListMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load thread messages: %w", err)
	}

	ownDomain := ""
	if profile, err := s.directory.FindProfile(ctx, userID); err != nil {
		log.Warn("⚠️ Failed to load owner profile", zap.Error(err))
	} else if profile != nil {
		ownDomain = Domain(profile.Email)
	}

	emails := collectEmails(messages)
	result := &ResolveResult{ThreadID: threadID, Companies: []uuid.UUID{}, Customers: []uuid.UUID{}, Errors: []string{}}
	companies := make(map[string]uuid.UUID)

	for _, email := range emails {
		domain := Domain(email)
		if !IsBusinessDomain(domain) || domain == ownDomain {
			continue
		}

		companyID, ok := companies[domain]
		if !ok {
			company, created, err := s.directory.FindOrCreateCompany(ctx, userID, domain, CompanyNameFromDomain(domain))
			if err != nil {
				s.recordError(log, result, fmt.Sprintf("company for domain %s: %v", domain, err))
				continue
			}
			companyID = company.CompanyID
			companies[domain] = companyID
			result.Companies = append(result.Companies, companyID)
			if created {
				result.CompaniesCreated++
			}

			if err := s.threads.LinkCompany(ctx, &entities.ThreadCompanyLink{ThreadID: threadID, CompanyID: companyID, UserID: userID}); err != nil {
				s.recordError(log, result, fmt.Sprintf("link company %s: %v", companyID, err))
			}
		}

		customer, created, err := s.directory.FindOrCreateCustomer(ctx, userID, email, LocalPart(email), &companyID)
		if err != nil {
			s.recordError(log, result, fmt.Sprintf("customer %s: %v", email, err))
			continue
		}
		result.Customers = append(result.Customers, customer.CustomerID)
		if created {
			result.CustomersCreated++
		}

		customerID := customer.CustomerID
		if err := s.threads.AddParticipant(ctx, &entities.ThreadParticipant{ThreadID: threadID, UserID: userID, CustomerID: &customerID}); err != nil {
			s.recordError(log, result, fmt.Sprintf("participant %s: %v", email, err))
		}
	}

	return result, nil
}

func (s *entityService) recordError(log *zap.Logger, result *ResolveResult, msg string) {
	log.Error("❌ Entity resolution step failed", zap.String("error", msg))
	result.Errors = append(result.Errors, msg)
}

func (s *entityService) setStage(ctx context.Context, log *zap.Logger, threadID string, userID uuid.UUID, stage entities.ThreadStage) {
	if err := s.threads.SetStage(ctx, threadID, userID, stage); err != nil {
		log.Warn("⚠️ Failed to update thread stage", zap.String("stage", string(stage)), zap.Error(err))
	}
}

// collectEmails returns the distinct sender and recipient addresses of the messages, sorted
func collectEmails(messages []entities.ThreadMessage) []string {
	seen := make(map[string]bool)
	add := func(raw string) {
		for _, email := range ParseAddresses(raw) {
			seen[email] = true
		}
	}
	for _, m := range messages {
		add(m.FromAddress)
		for _, a := range m.ToAddresses {
			add(a)
		}
		for _, a := range m.CcAddresses {
			add(a)
		}
	}

	emails := make([]string, 0, len(seen))
	for e := range seen {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	return emails
}
