package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
	"github.com/johnquangdev/customer-pulse/internal/domain/repositories"
)

// DirectoryRepository handles customer, profile and company data operations
type DirectoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository creates a new directory repository
func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

var _ repositories.DirectoryRepository = (*DirectoryRepository)(nil)

// FindCustomer retrieves a customer by ID
func (r *DirectoryRepository) FindCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var customer entities.Customer
	if err := r.db.WithContext(ctx).Where("customer_id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// FindCustomersByEmails retrieves a user's customers by email, case-insensitively
func (r *DirectoryRepository) FindCustomersByEmails(ctx context.Context, userID uuid.UUID, emails []string) ([]entities.Customer, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var customers []entities.Customer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("lower(email) IN ?", lowerAll(emails)).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindProfile retrieves an internal profile by ID
func (r *DirectoryRepository) FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindProfilesByEmails retrieves internal profiles by email, case-insensitively
func (r *DirectoryRepository) FindProfilesByEmails(ctx context.Context, emails []string) ([]entities.Profile, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var profiles []entities.Profile
	if err := r.db.WithContext(ctx).
		Where("lower(email) IN ?", lowerAll(emails)).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindOrCreateCompany returns the company for a domain, creating it when absent
func (r *DirectoryRepository) FindOrCreateCompany(ctx context.Context, userID uuid.UUID, domain, name string) (*entities.Company, bool, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	var company entities.Company
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND domain_name = ?", userID, domain).
		First(&company).Error
	if err == nil {
		return &company, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	company = entities.Company{
		UserID:      userID,
		DomainName:  domain,
		CompanyName: name,
		Status:      "active",
	}
	if err := r.db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, false, err
	}
	return &company, true, nil
}

// FindOrCreateCustomer returns the customer for an email, creating it as a prospect when absent.
// An existing customer without a company is linked to companyID.
func (r *DirectoryRepository) FindOrCreateCustomer(ctx context.Context, userID uuid.UUID, email, fullName string, companyID *uuid.UUID) (*entities.Customer, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var customer entities.Customer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lower(email) = ?", userID, email).
		First(&customer).Error
	if err == nil {
		if customer.AdoptCompany(companyID) {
			if err := r.db.WithContext(ctx).
				Model(&entities.Customer{}).
				Where("customer_id = ? AND company_id IS NULL", customer.CustomerID).
				Update("company_id", *customer.CompanyID).Error; err != nil {
				return nil, false, err
			}
		}
		return &customer, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	customer = entities.Customer{
		UserID:    userID,
		Email:     email,
		FullName:  fullName,
		CompanyID: companyID,
		Status:    entities.CustomerStatusProspect,
	}
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, false, err
	}
	return &customer, true, nil
}

// RecalculateHealthScore calls the recalculate_company_health_score SQL function
func (r *DirectoryRepository) RecalculateHealthScore(ctx context.Context, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("SELECT recalculate_company_health_score(?)", companyID).Error
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
