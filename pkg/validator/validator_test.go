package validator

import (
	"strings"
	"testing"
)

type sweepBody struct {
	Mode      string  `json:"mode" validate:"required,oneof=dry-run test-one batch"`
	Limit     int     `json:"limit,omitempty" validate:"omitempty,min=1"`
	Title     string  `json:"title,omitempty" validate:"omitempty,max=10"`
	MeetingID *string `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
}

func TestValidate(t *testing.T) {
	bad := "nope"
	tests := []struct {
		name    string
		body    sweepBody
		wantErr string
	}{
		{name: "valid", body: sweepBody{Mode: "batch", Limit: 3}},
		{name: "missing mode", body: sweepBody{}, wantErr: "mode is required"},
		{name: "unknown mode", body: sweepBody{Mode: "all"}, wantErr: "mode must be one of [dry-run test-one batch]"},
		{name: "large limit", body: sweepBody{Mode: "batch", Limit: 500}},
		{name: "negative limit", body: sweepBody{Mode: "batch", Limit: -1}, wantErr: "limit must be at least 1"},
		{name: "title too long", body: sweepBody{Mode: "batch", Title: "quarterly review"}, wantErr: "title must be at most 10"},
		{name: "bad uuid", body: sweepBody{Mode: "test-one", MeetingID: &bad}, wantErr: "meeting_id must be a uuid"},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.body)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}
