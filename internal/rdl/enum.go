package rdl

import (
	"slices"
	"strings"
)

// Enum is a named, ordered set of symbolic values that a field encodes.
type Enum struct {
	TypeName string
	Members  []EnumMember
}

// EnumMember is one choice of an Enum.
type EnumMember struct {
	Name  string
	Value uint64
	// Desc is the optional description; empty when absent.
	Desc string
}

// Equal reports whether both enums share a type name, compared without
// regard to case, and declare the same members in the same order.
func (e *Enum) Equal(other *Enum) bool {
	if e == nil || other == nil {
		return e == other
	}

	return strings.EqualFold(e.TypeName, other.TypeName) && slices.Equal(e.Members, other.Members)
}
