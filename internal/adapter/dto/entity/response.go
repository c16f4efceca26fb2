package entity

import (
	"github.com/google/uuid"

	usecase "github.com/johnquangdev/customer-pulse/internal/usecase/entity"
)

// ResolveResponse lists the companies and customers linked to the thread
type ResolveResponse struct {
	ThreadID         string      `json:"thread_id"`
	Companies        []uuid.UUID `json:"companies"`
	Customers        []uuid.UUID `json:"customers"`
	CompaniesCreated int         `json:"companies_created"`
	CustomersCreated int         `json:"customers_created"`
	RunID            string      `json:"run_id,omitempty"`
	Errors           []string    `json:"errors,omitempty"`
}

// FromResult converts a resolution result to its response body
func FromResult(res *usecase.ResolveResult) ResolveResponse {
	return ResolveResponse{
		ThreadID:         res.ThreadID,
		Companies:        res.Companies,
		Customers:        res.Customers,
		CompaniesCreated: res.CompaniesCreated,
		CustomersCreated: res.CustomersCreated,
		RunID:            res.RunID,
		Errors:           res.Errors,
	}
}
