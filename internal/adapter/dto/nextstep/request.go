package nextstep

// ExtractRequest names the summarized thread or meeting to extract next steps from
type ExtractRequest struct {
	SourceType string `json:"source_type" validate:"required,oneof=thread meeting" example:"thread"`
	SourceID   string `json:"source_id" validate:"required" example:"18c2f0a9b3e4d5f6"`
}
