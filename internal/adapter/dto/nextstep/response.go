package nextstep

import (
	usecase "github.com/johnquangdev/customer-pulse/internal/usecase/nextstep"
)

// ExtractResponse reports inserted next steps
type ExtractResponse struct {
	Success           bool `json:"success"`
	NextStepsCount    int  `json:"next_steps_count"`
	CompaniesCount    int  `json:"companies_count"`
	SkippedDuplicates int  `json:"skipped_duplicates"`
	AssignmentsCount  int  `json:"assignments_count"`

	FeatureRequestsCount   int `json:"feature_requests_count"`
	SkippedFeatureRequests int `json:"skipped_feature_requests"`
}

// NoCompanyResponse is returned when the source has no linked company
type NoCompanyResponse struct {
	Message              string `json:"message"`
	NextStepsCount       int    `json:"next_steps_count"`
	FeatureRequestsCount int    `json:"feature_requests_count"`
}

// FromResult converts an extraction result to its response body
func FromResult(res *usecase.ExtractResult) interface{} {
	if res.NoCompany {
		return NoCompanyResponse{
			Message:              "No company linked to source, no next steps created",
			NextStepsCount:       0,
			FeatureRequestsCount: res.FeatureRequestsCount,
		}
	}
	return ExtractResponse{
		Success:           true,
		NextStepsCount:    res.NextStepsCount,
		CompaniesCount:    res.CompaniesCount,
		SkippedDuplicates: res.SkippedDuplicates,
		AssignmentsCount:  res.AssignmentsCount,

		FeatureRequestsCount:   res.FeatureRequestsCount,
		SkippedFeatureRequests: res.SkippedFeatureRequests,
	}
}
