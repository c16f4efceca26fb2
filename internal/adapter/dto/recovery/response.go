package recovery

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/customer-pulse/internal/infrastructure/external/recall"
	usecase "github.com/johnquangdev/customer-pulse/internal/usecase/recovery"
)

// DryRunResponse lists the meetings a sweep would touch
type DryRunResponse struct {
	Mode         string      `json:"mode"`
	Count        int         `json:"count"`
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

// SweepResponse reports per-meeting outcomes of a sweep
type SweepResponse struct {
	Mode       string               `json:"mode"`
	SweepID    uuid.UUID            `json:"sweep_id"`
	Processed  int                  `json:"processed"`
	Successful []usecase.ItemResult `json:"successful"`
	Failed     []uuid.UUID          `json:"failed"`
	Errors     []usecase.ItemError  `json:"errors"`
	APICalls   []recall.APICall     `json:"api_calls,omitempty"`
}

// FromResult converts a sweep result to its response body
func FromResult(res *usecase.SweepResult) interface{} {
	if res.Mode == usecase.ModeDryRun {
		ids := res.CandidateIDs
		if ids == nil {
			ids = []uuid.UUID{}
		}
		return DryRunResponse{
			Mode:         string(res.Mode),
			Count:        res.Count,
			CandidateIDs: ids,
		}
	}
	return SweepResponse{
		Mode:       string(res.Mode),
		SweepID:    res.SweepID,
		Processed:  res.Processed,
		Successful: res.Successful,
		Failed:     res.Failed,
		Errors:     res.Errors,
		APICalls:   res.APICalls,
	}
}
