package enums

import "fmt"

// TargetType identifies which side of the marketplace a row points at.
type TargetType string

const (
	TargetTypeProvider TargetType = "provider"
	TargetTypeBusiness TargetType = "business"
)

// legacy clients still send "service_provider" for providers.
const targetTypeProviderAlias = "service_provider"

var validTargetTypes = []TargetType{
	TargetTypeProvider,
	TargetTypeBusiness,
}

// String implements fmt.Stringer.
func (t TargetType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TargetType.
func (t TargetType) IsValid() bool {
	for _, candidate := range validTargetTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTargetType converts raw input into a TargetType, accepting the
// service_provider alias.
func ParseTargetType(value string) (TargetType, error) {
	if value == targetTypeProviderAlias {
		return TargetTypeProvider, nil
	}
	for _, candidate := range validTargetTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid target type %q", value)
}
