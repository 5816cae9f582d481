package flatten

import (
	"fmt"
	"strconv"
	"strings"

	"rawheader/internal/diagnostic"
	"rawheader/internal/rdl"
)

// Flattener walks an address map and collects its constants. Nodes it
// cannot handle are reported as diagnostics and skipped.
type Flattener struct {
	diags diagnostic.Diagnostics
}

// New creates a Flattener with an empty diagnostic set.
func New() *Flattener {
	return &Flattener{}
}

// Flatten is a convenience wrapper running a fresh Flattener over node.
func Flatten(node *rdl.Node, prefix string) (Block, diagnostic.Diagnostics) {
	f := New()
	block := f.Flatten(node, prefix)

	return block, f.Diagnostics()
}

// Diagnostics returns everything reported so far.
func (f *Flattener) Diagnostics() diagnostic.Diagnostics {
	return f.diags
}

// Flatten returns the block for node and its subtree. prefix is prepended
// to every name and is normally empty for the top-level call.
func (f *Flattener) Flatten(node *rdl.Node, prefix string) Block {
	return f.flatten(node, prefix, node.InstName)
}

func (f *Flattener) flatten(node *rdl.Node, prefix, path string) Block {
	baseName := prefix + strings.ToUpper(node.InstName)

	elems := []*rdl.Node{node}
	if node.IsArray() {
		elems = node.Unrolled()
	}

	var (
		block Block
		regs  Group
	)

	for _, elem := range elems {
		name, elemPath := baseName, path
		if node.IsArray() {
			for _, idx := range elem.CurrentIdx {
				name += "_" + strconv.Itoa(idx)
				elemPath += "[" + strconv.Itoa(idx) + "]"
			}
		}

		switch elem.Kind {
		case rdl.KindReg:
			// Registers replace the block instead of appending to it: all
			// elements of a register array end up in a single group.
			regs = append(regs,
				Constant{Name: name + SuffixRegAddr, Value: elem.Address},
				Constant{Name: name + SuffixRegOffset, Value: elem.Offset},
			)
			block = Block{regs}

		case rdl.KindAddrmap, rdl.KindRegfile:
			block = append(block, Group{}, baseGroup(name, elem))

			for _, child := range elem.Children {
				block = append(block, f.flatten(child, name+"_", elemPath+"."+child.InstName)...)
			}

		case rdl.KindMem:
			block = append(block, Group{}, baseGroup(name, elem))

		case rdl.KindField:
			// fields carry no address of their own

		default:
			// KindUnknown, or the invalid zero Kind
			f.unknown(elem, elemPath)
		}
	}

	return block
}

func baseGroup(name string, n *rdl.Node) Group {
	return Group{
		{Name: name + SuffixBaseAddr, Value: n.Address},
		{Name: name + SuffixSize, Value: n.Size},
	}
}

func (f *Flattener) unknown(n *rdl.Node, path string) {
	kind := n.TypeName
	if kind == "" {
		kind = n.Kind.String()
	}

	f.diags.AddWarning(diagnostic.CodeUnknownNodeKind,
		fmt.Sprintf("unknown node kind %q, skipped", kind), path)
}
