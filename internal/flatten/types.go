package flatten

import "rawheader/internal/common"

// Name suffixes by role.
const (
	SuffixBaseAddr  = "_BASE_ADDR"
	SuffixSize      = "_SIZE"
	SuffixRegAddr   = "_REG_ADDR"
	SuffixRegOffset = "_REG_OFFSET"
)

// Constant is one named value in the generated output.
type Constant struct {
	Name  string
	Value uint64
}

// Group is a run of constants rendered together. An empty group is a spacer.
type Group []Constant

// IsSpacer reports whether the group only separates its neighbours.
func (g Group) IsSpacer() bool {
	return common.IsEmpty(g)
}

// Block is an ordered sequence of groups.
type Block []Group

// Constants returns all constants of the block in order, spacers dropped.
func (b Block) Constants() []Constant {
	var out []Constant
	for _, g := range b {
		out = append(out, g...)
	}

	return out
}

// NameWidth returns the length of the longest constant name, used by
// templates to align values in a column.
func (b Block) NameWidth() int {
	width := 0
	for _, g := range b {
		for _, c := range g {
			width = max(width, len(c.Name))
		}
	}

	return width
}
