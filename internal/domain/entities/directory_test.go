package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestCustomerAdoptCompany(t *testing.T) {
	company := uuid.New()

	c := &Customer{CustomerID: uuid.New()}
	if !c.AdoptCompany(&company) || c.CompanyID == nil || *c.CompanyID != company {
		t.Fatalf("customer without a company should adopt it, got %v", c.CompanyID)
	}

	other := uuid.New()
	if c.AdoptCompany(&other) || *c.CompanyID != company {
		t.Fatalf("existing company must not be replaced, got %v", c.CompanyID)
	}

	bare := &Customer{}
	nilID := uuid.Nil
	if bare.AdoptCompany(nil) || bare.AdoptCompany(&nilID) || bare.CompanyID != nil {
		t.Fatalf("nothing to adopt should leave the customer unchanged")
	}
}
