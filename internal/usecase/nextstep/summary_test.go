package nextstep

import (
	"testing"
	"time"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

func TestParseSummary_StructuredItems(t *testing.T) {
	raw := []byte(`{
		"next_steps": [
			{"text": "Send pricing deck", "owner": "sarah@acme.com", "priority": "high", "due_date": "2026-04-01"},
			{"description": "Book follow-up call", "priority": "urgent"},
			{"text": "   "},
			"Share security questionnaire"
		],
		"next_step": "ignored when structured items exist"
	}`)

	steps := ParseSummary(raw)
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d: %+v", len(steps), steps)
	}

	first := steps[0]
	if first.Text != "Send pricing deck" || first.Priority != entities.PriorityHigh {
		t.Fatalf("unexpected first step %+v", first)
	}
	if first.Owner == nil || *first.Owner != "sarah@acme.com" {
		t.Fatalf("owner not parsed: %+v", first.Owner)
	}
	want := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if first.DueDate == nil || !first.DueDate.Equal(want) {
		t.Fatalf("due date %v want %v", first.DueDate, want)
	}

	if steps[1].Text != "Book follow-up call" || steps[1].Priority != entities.PriorityMedium {
		t.Fatalf("description alias or priority normalization failed: %+v", steps[1])
	}
	if steps[2].Text != "Share security questionnaire" || steps[2].Owner != nil {
		t.Fatalf("plain string item not parsed: %+v", steps[2])
	}
}

func TestParseSummary_LegacyField(t *testing.T) {
	steps := ParseSummary([]byte(`{"next_step": "  Confirm renewal terms  "}`))
	if len(steps) != 1 {
		t.Fatalf("expected legacy step, got %+v", steps)
	}
	if steps[0].Text != "Confirm renewal terms" || steps[0].Priority != entities.PriorityMedium || steps[0].Owner != nil || steps[0].DueDate != nil {
		t.Fatalf("unexpected legacy step %+v", steps[0])
	}
}

func TestParseSummary_Empty(t *testing.T) {
	inputs := []string{
		``,
		`null`,
		`{}`,
		`{"next_steps": []}`,
		`{"next_steps": [{"text": ""}], "next_step": "   "}`,
		`{"next_steps": "not a list"}`,
		`"just a string"`,
	}
	for _, in := range inputs {
		if steps := ParseSummary([]byte(in)); len(steps) != 0 {
			t.Fatalf("ParseSummary(%q) = %+v, want none", in, steps)
		}
	}
}

func TestParseSummary_NonArrayFallsBackToLegacy(t *testing.T) {
	steps := ParseSummary([]byte(`{"next_steps": "oops", "next_step": "Call back"}`))
	if len(steps) != 1 || steps[0].Text != "Call back" {
		t.Fatalf("unexpected steps %+v", steps)
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"2026-05-02", ptrTime(time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))},
		{"2026-05-02T09:30:00Z", ptrTime(time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC))},
		{"2026-05-02T09:30:00+02:00", ptrTime(time.Date(2026, 5, 2, 7, 30, 0, 0, time.UTC))},
		{"2026-05-02T09:30:00", ptrTime(time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC))},
		{"next Tuesday", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseDueDate(tt.in)
		if (got == nil) != (tt.want == nil) {
			t.Fatalf("ParseDueDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got != nil && !got.Equal(*tt.want) {
			t.Fatalf("ParseDueDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestParseFeatureRequests(t *testing.T) {
	raw := []byte(`{
		"next_steps": [],
		"feature_requests": [
			{"title": " Bulk User Editing ", "use_case": "onboarding 300 seats", "urgency": "High", "customer_impact": "  "},
			{"title": "API Export for Reports", "urgency": "urgent"},
			{"title": "", "urgency": "High"},
			"not an object"
		]
	}`)

	got := ParseFeatureRequests(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d: %+v", len(got), got)
	}
	if got[0].Title != "Bulk User Editing" || got[0].Urgency != entities.FeatureUrgencyHigh {
		t.Fatalf("unexpected first request %+v", got[0])
	}
	if got[0].UseCase == nil || *got[0].UseCase != "onboarding 300 seats" || got[0].CustomerImpact != nil {
		t.Fatalf("optional fields not normalized: %+v", got[0])
	}
	if got[1].Urgency != entities.FeatureUrgencyLow {
		t.Fatalf("unknown urgency should default to Low, got %q", got[1].Urgency)
	}

	for _, empty := range []string{``, `null`, `{"next_steps":[]}`, `{"feature_requests":"x"}`} {
		if got := ParseFeatureRequests([]byte(empty)); len(got) != 0 {
			t.Fatalf("%q: expected nothing, got %+v", empty, got)
		}
	}
}
