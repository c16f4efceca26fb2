package entities

import (
	"time"

	"github.com/google/uuid"
)

// CustomerStatus is the relationship stage of an external contact
type CustomerStatus string

const (
	CustomerStatusProspect CustomerStatus = "prospect"
	CustomerStatusActive   CustomerStatus = "active"
)

// Customer is an external contact belonging to a company
type Customer struct {
	CustomerID uuid.UUID      `json:"customer_id" gorm:"column:customer_id;type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	CompanyID  *uuid.UUID     `json:"company_id,omitempty" gorm:"type:uuid;index"`
	Email      string         `json:"email" gorm:"type:text;not null"`
	FullName   string         `json:"full_name" gorm:"type:text"`
	Status     CustomerStatus `json:"status" gorm:"type:varchar(32);not null;default:'prospect'"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// AdoptCompany links the customer to companyID when it has no company yet.
// It reports whether the customer changed.
func (c *Customer) AdoptCompany(companyID *uuid.UUID) bool {
	if c.CompanyID != nil || companyID == nil || *companyID == uuid.Nil {
		return false
	}
	id := *companyID
	c.CompanyID = &id
	return true
}

// Profile is an internal team member
type Profile struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Email    string    `json:"email" gorm:"type:text"`
	FullName string    `json:"full_name" gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Company groups customers sharing an email domain
type Company struct {
	CompanyID   uuid.UUID `json:"company_id" gorm:"column:company_id;type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	DomainName  string    `json:"domain_name" gorm:"type:text;not null"`
	CompanyName string    `json:"company_name" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(32);default:'active'"`
	HealthScore *int      `json:"health_score,omitempty" gorm:"type:integer"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Company) TableName() string {
	return "companies"
}
