package entry

import "github.com/google/uuid"

// NewID generates a time-ordered entry id (UUID v7), the form spec §9 asks
// for on every entry produced during conversion.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the system clock/random source is
		// unavailable; fall back to v4 rather than panic mid-conversion.
		return uuid.NewString()
	}
	return id.String()
}

// NewSyntheticID generates a random id (UUID v4), acceptable for synthetic
// or test fixtures per spec §9.
func NewSyntheticID() string {
	return uuid.NewString()
}
