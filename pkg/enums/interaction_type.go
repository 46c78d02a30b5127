package enums

import "fmt"

// InteractionType records how a user previously engaged a target. Reviews
// are gated on at least one interaction existing.
type InteractionType string

const (
	InteractionTypeMessage InteractionType = "message"
	InteractionTypeBooking InteractionType = "booking"
)

var validInteractionTypes = []InteractionType{
	InteractionTypeMessage,
	InteractionTypeBooking,
}

// String implements fmt.Stringer.
func (i InteractionType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InteractionType.
func (i InteractionType) IsValid() bool {
	for _, candidate := range validInteractionTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInteractionType converts raw input into an InteractionType.
func ParseInteractionType(value string) (InteractionType, error) {
	for _, candidate := range validInteractionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid interaction type %q", value)
}
