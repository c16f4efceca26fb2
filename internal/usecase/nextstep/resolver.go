package nextstep

import (
	"strings"

	"github.com/johnquangdev/customer-pulse/internal/domain/entities"
)

// OwnerResolver maps a free-text owner string to one of the candidate participants
type OwnerResolver interface {
	Resolve(owner string, candidates []entities.Participant) (entities.Participant, bool)
}

// SubstringResolver matches when the owner and a candidate's name or email
// contain one another, ignoring case. The first matching candidate wins.
type SubstringResolver struct{}

// Resolve implements OwnerResolver
func (SubstringResolver) Resolve(owner string, candidates []entities.Participant) (entities.Participant, bool) {
	needle := strings.ToLower(strings.TrimSpace(owner))
	if needle == "" {
		return entities.Participant{}, false
	}
	for _, c := range candidates {
		if containsEither(needle, c.Name) || containsEither(needle, c.Email) {
			return c, true
		}
	}
	return entities.Participant{}, false
}

func containsEither(needle, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return false
	}
	return strings.Contains(value, needle) || strings.Contains(needle, value)
}
