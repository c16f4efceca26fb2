package webhook

import "strings"

// Recall events that mean a recording may now have a transcript
const (
	EventBotDone        = "bot.done"
	EventTranscriptDone = "transcript.done"
)

// RecallEvent is the envelope of a recording vendor webhook
type RecallEvent struct {
	Event string          `json:"event"`
	Data  RecallEventData `json:"data"`
}

// RecallEventData carries the bot reference in either shape the vendor sends
type RecallEventData struct {
	BotID string `json:"bot_id"`
	Bot   *struct {
		ID string `json:"id"`
	} `json:"bot"`
}

// BotID returns the referenced bot id or empty string
func (e RecallEvent) BotID() string {
	if e.Data.Bot != nil && strings.TrimSpace(e.Data.Bot.ID) != "" {
		return strings.TrimSpace(e.Data.Bot.ID)
	}
	return strings.TrimSpace(e.Data.BotID)
}

// TriggersRecovery reports whether the event should start a single-meeting sweep
func (e RecallEvent) TriggersRecovery() bool {
	return e.Event == EventBotDone || e.Event == EventTranscriptDone
}
