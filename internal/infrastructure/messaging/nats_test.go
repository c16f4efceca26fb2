package messaging

import "testing"

func TestSubjectFor(t *testing.T) {
	tests := []struct {
		prefix, task, want string
	}{
		{"tasks", "analyze-thread", "tasks.analyze-thread"},
		{"tasks.", "process-meeting-transcript", "tasks.process-meeting-transcript"},
		{"", "analyze-thread", "analyze-thread"},
	}
	for _, tt := range tests {
		if got := subjectFor(tt.prefix, tt.task); got != tt.want {
			t.Fatalf("subjectFor(%q,%q)=%q want %q", tt.prefix, tt.task, got, tt.want)
		}
	}
}
