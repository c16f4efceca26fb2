package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// DirectoryRepository defines access to customers, profiles and companies
type DirectoryRepository interface {
	// FindCustomer retrieves a customer by ID (nil when missing)
	FindCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error)

	// FindCustomersByEmails returns the user's customers whose email is in the list
	FindCustomersByEmails(ctx context.Context, userID uuid.UUID, emails []string) ([]entities.Customer, error)

	// FindProfile retrieves an internal profile by ID (nil when missing)
	FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error)

	// FindProfilesByEmails returns internal profiles whose email is in the list
	FindProfilesByEmails(ctx context.Context, emails []string) ([]entities.Profile, error)

	// FindOrCreateCompany returns the user's company for a domain, creating it when absent
	FindOrCreateCompany(ctx context.Context, userID uuid.UUID, domain, name string) (*entities.Company, bool, error)

	// FindOrCreateCustomer returns the user's customer for an email, creating it when absent
	FindOrCreateCustomer(ctx context.Context, userID uuid.UUID, email, fullName string, companyID *uuid.UUID) (*entities.Customer, bool, error)

	// RecalculateHealthScore runs the health score function for a company
	RecalculateHealthScore(ctx context.Context, companyID uuid.UUID) error
}
