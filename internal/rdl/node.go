package rdl

import (
	"iter"
	"slices"
	"strconv"
)

// Node is one instance in an elaborated address map.
//
// For an arrayed node, Address and Offset describe element 0 and Stride
// is the distance between consecutive elements. Unrolled yields the
// concrete elements.
type Node struct {
	Kind Kind
	// TypeName is the kind keyword as it appeared in the input.
	TypeName string
	InstName string
	// Address is the absolute byte address.
	Address uint64
	// Offset is the address offset relative to the parent.
	Offset uint64
	// Size is the total byte size of a single element.
	Size uint64
	// Dims holds the array dimensions, nil when the node is not an array.
	Dims   []int
	Stride uint64
	// CurrentIdx is set on elements produced by Unrolled.
	CurrentIdx []int
	// Encode is the value enumeration of a field, if any.
	Encode   *Enum
	Children []*Node
}

// IsArray reports whether the node was declared with array dimensions.
func (n *Node) IsArray() bool {
	return len(n.Dims) > 0
}

// ElementCount returns the number of concrete elements the node stands for.
func (n *Node) ElementCount() int {
	count := 1
	for _, d := range n.Dims {
		count *= d
	}

	return count
}

// Unrolled returns one copy of the node per array element, in lexicographic
// index order (last dimension varies fastest). Each copy and its subtree have
// their addresses shifted to the element's location. A non-array node yields
// a single copy of itself.
func (n *Node) Unrolled() []*Node {
	if !n.IsArray() {
		return []*Node{n.shifted(0)}
	}

	total := n.ElementCount()
	out := make([]*Node, 0, total)
	idx := make([]int, len(n.Dims))

	for linear := range total {
		delta := uint64(linear) * n.Stride
		elem := n.shifted(delta)
		elem.Offset += delta
		elem.CurrentIdx = slices.Clone(idx)
		out = append(out, elem)

		// odometer increment
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < n.Dims[d] {
				break
			}

			idx[d] = 0
		}
	}

	return out
}

// shifted deep-copies the subtree rooted at n, moving every absolute
// address by delta. Offsets are relative and stay as they are.
func (n *Node) shifted(delta uint64) *Node {
	cp := *n
	cp.Address += delta
	cp.Dims = slices.Clone(n.Dims)
	cp.CurrentIdx = slices.Clone(n.CurrentIdx)

	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.shifted(delta)
		}
	}

	return &cp
}

// Descendants yields every node below n in pre-order together with its
// dotted instance path, starting at n's own name. A zero kind matches all
// kinds. With unroll set, arrayed nodes are expanded into their elements
// before being yielded and descended into, and each element's path
// carries its indices ("top.ch[1].cfg").
func (n *Node) Descendants(kind Kind, unroll bool) iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		n.walk(n.InstName, kind, unroll, yield)
	}
}

func (n *Node) walk(path string, kind Kind, unroll bool, yield func(string, *Node) bool) bool {
	for _, child := range n.Children {
		elems := []*Node{child}
		if unroll && child.IsArray() {
			elems = child.Unrolled()
		}

		for _, e := range elems {
			elemPath := path + "." + e.InstName
			for _, idx := range e.CurrentIdx {
				elemPath += "[" + strconv.Itoa(idx) + "]"
			}

			if (kind == 0 || e.Kind == kind) && !yield(elemPath, e) {
				return false
			}

			if !e.walk(elemPath, kind, unroll, yield) {
				return false
			}
		}
	}

	return true
}
