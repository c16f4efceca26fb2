package entities

import "errors"

// Domain errors
var (
	// Source errors
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrThreadNotFound    = errors.New("thread not found")
	ErrMissingOwner      = errors.New("source has no owning user")
	ErrInvalidSourceType = errors.New("source_type must be thread or meeting")

	// Sweep errors
	ErrInvalidSweepMode   = errors.New("mode must be dry-run, test-one or batch")
	ErrMeetingLocked      = errors.New("meeting is locked by another sweep")
	ErrTranscriptTooShort = errors.New("formatted transcript is empty or corrupt")
	ErrNoTranscriptRef    = errors.New("no transcript reference available")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)
