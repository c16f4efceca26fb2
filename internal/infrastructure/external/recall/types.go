package recall

import (
	"encoding/json"
	"strings"
)

// Bot status codes that end a bot without a usable recording
var fatalStatusCodes = map[string]bool{
	"fatal":            true,
	"payment_required": true,
	"error":            true,
}

// StatusChange is one entry of a bot's status history
type StatusChange struct {
	Code      string  `json:"code"`
	SubCode   *string `json:"sub_code"`
	CreatedAt string  `json:"created_at"`
}

// Bot is the subset of the bot resource the sweep reads
type Bot struct {
	ID            string         `json:"id"`
	StatusChanges []StatusChange `json:"status_changes"`
	Recordings    []Recording    `json:"recordings"`

	// Raw keeps the vendor payload for debug call logs
	Raw json.RawMessage `json:"-"`
}

// Recording is one recording produced by a bot
type Recording struct {
	ID             string         `json:"id"`
	MediaShortcuts MediaShortcuts `json:"media_shortcuts"`
}

// MediaShortcuts exposes the artifacts attached to a recording
type MediaShortcuts struct {
	Transcript *Artifact `json:"transcript"`
}

// Artifact is a downloadable vendor artifact (transcript, video, ...)
type Artifact struct {
	ID     string          `json:"id"`
	Data   *ArtifactData   `json:"data"`
	Status *ArtifactStatus `json:"status"`
}

// ArtifactData carries the download location of an artifact
type ArtifactData struct {
	DownloadURL string `json:"download_url"`
}

// ArtifactStatus is the processing state of an artifact
type ArtifactStatus struct {
	Code string `json:"code"`
}

// DownloadURL returns the artifact download URL or empty string
func (a *Artifact) DownloadURL() string {
	if a == nil || a.Data == nil {
		return ""
	}
	return strings.TrimSpace(a.Data.DownloadURL)
}

// transcriptList is the paginated transcript listing
type transcriptList struct {
	Results []Artifact `json:"results"`
}

// Status returns the latest status code of the bot, lower-cased
func (b *Bot) Status() string {
	if b == nil || len(b.StatusChanges) == 0 {
		return ""
	}
	return strings.ToLower(b.StatusChanges[len(b.StatusChanges)-1].Code)
}

// IsFatal reports whether the bot ended in a fatal-class status
func (b *Bot) IsFatal() bool {
	if b == nil || len(b.StatusChanges) == 0 {
		return false
	}
	last := b.StatusChanges[len(b.StatusChanges)-1]
	if fatalStatusCodes[strings.ToLower(last.Code)] {
		return true
	}
	return last.SubCode != nil && fatalStatusCodes[strings.ToLower(*last.SubCode)]
}

// Segment is one speaker turn of a downloaded transcript
type Segment struct {
	Participant SegmentParticipant `json:"participant"`
	Words       []Word             `json:"words"`
}

// SegmentParticipant identifies the speaker of a segment
type SegmentParticipant struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Word is one recognized word
type Word struct {
	Text string `json:"text"`
}
