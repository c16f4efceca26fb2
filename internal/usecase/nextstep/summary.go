package nextstep

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// summaryDoc is the part of an LLM summary that carries next steps
type summaryDoc struct {
	NextSteps []json.RawMessage `json:"next_steps"`
	NextStep  *string           `json:"next_step"`
}

// summaryItem accepts both the text and description spellings
type summaryItem struct {
	Text        string  `json:"text"`
	Description string  `json:"description"`
	Owner       *string `json:"owner"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
}

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseSummary extracts raw next steps from a summary document.
// Structured next_steps win; a legacy next_step string is used only when no structured item survives.
func ParseSummary(raw []byte) []entities.ExtractedStep {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var doc summaryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		// next_steps may be a non-array value; retry with only the legacy field
		var legacy struct {
			NextStep *string `json:"next_step"`
		}
		if json.Unmarshal(raw, &legacy) != nil {
			return nil
		}
		doc = summaryDoc{NextStep: legacy.NextStep}
	}

	steps := make([]entities.ExtractedStep, 0, len(doc.NextSteps))
	for _, item := range doc.NextSteps {
		if step, ok := parseItem(item); ok {
			steps = append(steps, step)
		}
	}
	if len(steps) > 0 {
		return steps
	}

	if doc.NextStep != nil {
		if text := strings.TrimSpace(*doc.NextStep); text != "" {
			return []entities.ExtractedStep{{Text: text, Priority: entities.PriorityMedium}}
		}
	}
	return nil
}

func parseItem(raw json.RawMessage) (entities.ExtractedStep, bool) {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		plain = strings.TrimSpace(plain)
		return entities.ExtractedStep{Text: plain, Priority: entities.PriorityMedium}, plain != ""
	}

	var item summaryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return entities.ExtractedStep{}, false
	}

	text := strings.TrimSpace(item.Text)
	if text == "" {
		text = strings.TrimSpace(item.Description)
	}
	if text == "" {
		return entities.ExtractedStep{}, false
	}

	step := entities.ExtractedStep{
		Text:     text,
		Priority: entities.NormalizePriority(strings.ToLower(strings.TrimSpace(item.Priority))),
	}
	if item.Owner != nil {
		if owner := strings.TrimSpace(*item.Owner); owner != "" {
			step.Owner = &owner
		}
	}
	if item.DueDate != nil {
		step.DueDate = ParseDueDate(*item.DueDate)
	}
	return step, true
}

// ParseDueDate normalizes a due date to UTC, or nil when unparseable
func ParseDueDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// featureRequestItem is one entry of the summary's feature_requests array
type featureRequestItem struct {
	Title               string  `json:"title"`
	CustomerDescription *string `json:"customer_description"`
	UseCase             *string `json:"use_case"`
	Urgency             string  `json:"urgency"`
	UrgencySignals      *string `json:"urgency_signals"`
	CustomerImpact      *string `json:"customer_impact"`
}

// ParseFeatureRequests extracts feature requests from a summary document.
// Items without a title are dropped and unknown urgencies become Low.
func ParseFeatureRequests(raw []byte) []entities.ExtractedFeatureRequest {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var doc struct {
		FeatureRequests []json.RawMessage `json:"feature_requests"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	out := make([]entities.ExtractedFeatureRequest, 0, len(doc.FeatureRequests))
	for _, rawItem := range doc.FeatureRequests {
		var item featureRequestItem
		if json.Unmarshal(rawItem, &item) != nil {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		out = append(out, entities.ExtractedFeatureRequest{
			Title:               title,
			CustomerDescription: nonBlank(item.CustomerDescription),
			UseCase:             nonBlank(item.UseCase),
			Urgency:             entities.NormalizeFeatureUrgency(strings.TrimSpace(item.Urgency)),
			UrgencySignals:      nonBlank(item.UrgencySignals),
			CustomerImpact:      nonBlank(item.CustomerImpact),
		})
	}
	return out
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
