package recall

import "strings"

// TranscriptRef points at a transcript either directly or by vendor ID
type TranscriptRef struct {
	DownloadURL  string
	TranscriptID string
}

// RefStrategy inspects a bot payload for a transcript reference
type RefStrategy func(bot *Bot) (TranscriptRef, bool)

// DefaultRefStrategies is the order the sweep tries: a ready download URL beats an ID lookup
var DefaultRefStrategies = []RefStrategy{
	EmbeddedDownloadURL,
	EmbeddedTranscriptID,
}

// EmbeddedDownloadURL finds a transcript download URL inside the bot's recordings
func EmbeddedDownloadURL(bot *Bot) (TranscriptRef, bool) {
	if bot == nil {
		return TranscriptRef{}, false
	}
	for _, rec := range bot.Recordings {
		t := rec.MediaShortcuts.Transcript
		if u := t.DownloadURL(); u != "" {
			return TranscriptRef{DownloadURL: u, TranscriptID: t.ID}, true
		}
	}
	return TranscriptRef{}, false
}

// EmbeddedTranscriptID finds a transcript ID inside the bot's recordings
func EmbeddedTranscriptID(bot *Bot) (TranscriptRef, bool) {
	if bot == nil {
		return TranscriptRef{}, false
	}
	for _, rec := range bot.Recordings {
		t := rec.MediaShortcuts.Transcript
		if t != nil && strings.TrimSpace(t.ID) != "" {
			return TranscriptRef{TranscriptID: strings.TrimSpace(t.ID)}, true
		}
	}
	return TranscriptRef{}, false
}

// ResolveTranscriptRef returns the first reference found by the strategies in order
func ResolveTranscriptRef(bot *Bot, strategies []RefStrategy) (TranscriptRef, bool) {
	for _, strategy := range strategies {
		if ref, ok := strategy(bot); ok {
			return ref, true
		}
	}
	return TranscriptRef{}, false
}
