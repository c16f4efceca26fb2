package recall

import "strings"

// MinTranscriptLength is the shortest formatted transcript accepted as real content
const MinTranscriptLength = 50

const unknownSpeaker = "Unknown Speaker"

// FormatTranscript renders segments as "speaker: text" blocks separated by blank lines
func FormatTranscript(segments []Segment) string {
	blocks := make([]string, 0, len(segments))
	for _, seg := range segments {
		words := make([]string, 0, len(seg.Words))
		for _, w := range seg.Words {
			if t := strings.TrimSpace(w.Text); t != "" {
				words = append(words, t)
			}
		}
		if len(words) == 0 {
			continue
		}
		blocks = append(blocks, speakerLabel(seg.Participant)+": "+strings.Join(words, " "))
	}
	return strings.Join(blocks, "\n\n")
}

// speakerLabel prefers the participant name, then the local part of their email
func speakerLabel(p SegmentParticipant) string {
	if p.Name != nil {
		if name := strings.TrimSpace(*p.Name); name != "" {
			return name
		}
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if at := strings.Index(email, "@"); at > 0 {
			return email[:at]
		}
		if email != "" {
			return email
		}
	}
	return unknownSpeaker
}
