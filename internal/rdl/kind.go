package rdl

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the variant of a Node.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindAddrmap
	KindRegfile
	KindReg
	KindMem
	KindField
	// KindUnknown marks a node whose kind is outside the supported set.
	// The raw kind string is kept in Node.TypeName.
	KindUnknown
)

// IsComposite reports whether nodes of this kind hold child blocks.
func (k Kind) IsComposite() bool {
	return k == KindAddrmap || k == KindRegfile
}

// ParseKind maps a kind keyword to a Kind. Anything unrecognized
// yields KindUnknown.
func ParseKind(s string) Kind {
	switch s {
	case "addrmap":
		return KindAddrmap
	case "regfile":
		return KindRegfile
	case "reg":
		return KindReg
	case "mem":
		return KindMem
	case "field":
		return KindField
	default:
		return KindUnknown
	}
}
