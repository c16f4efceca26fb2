package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestTranscriptObjectName(t *testing.T) {
	id := uuid.MustParse("7f8e2a8e-6f1e-4a3b-9d3c-1b2a3c4d5e6f")

	tests := []struct {
		bot  string
		want string
	}{
		{"bot-1", "transcripts/7f8e2a8e-6f1e-4a3b-9d3c-1b2a3c4d5e6f/bot-1.txt"},
		{"../../etc/passwd", "transcripts/7f8e2a8e-6f1e-4a3b-9d3c-1b2a3c4d5e6f/passwd.txt"},
	}
	for _, tt := range tests {
		if got := TranscriptObjectName(id, tt.bot); got != tt.want {
			t.Fatalf("TranscriptObjectName(%q)=%q want %q", tt.bot, got, tt.want)
		}
	}
}
