package recovery

// SweepRequest represents a transcript recovery sweep invocation
type SweepRequest struct {
	Mode      string  `json:"mode" validate:"required,oneof=dry-run test-one batch" example:"dry-run"`
	Limit     int     `json:"limit,omitempty" validate:"omitempty,min=1" example:"5"`
	Debug     bool    `json:"debug,omitempty"`
	MeetingID *string `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
}
