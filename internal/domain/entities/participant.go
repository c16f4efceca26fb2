package entities

import "github.com/google/uuid"

// Participant is a resolved identity on a thread or meeting.
// Thread participants carry one of CustomerID / ProfileID. Meeting attendees
// are matched against both tables and may carry either, both or neither.
type Participant struct {
	CustomerID *uuid.UUID
	ProfileID  *uuid.UUID
	Name       string
	Email      string
}

// IsExternal reports whether the participant is a customer contact
func (p Participant) IsExternal() bool {
	return p.CustomerID != nil
}

// IsInternal reports whether the participant is a team member
func (p Participant) IsInternal() bool {
	return p.ProfileID != nil
}
