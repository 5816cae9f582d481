package rdl

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the top-level YAML document of an elaborated address map.
type File struct {
	// Version of the dump format. Defaults to "1".
	Version string `yaml:"version,omitempty"`
	// Enums are named enumerations that fields may reference from "encode".
	Enums []EnumSpec `yaml:"enums,omitempty"`
	// Addrmap is the root of the tree.
	Addrmap NodeSpec `yaml:"addrmap"`
}

// NodeSpec is the YAML form of a single node.
type NodeSpec struct {
	Kind   string `yaml:"kind,omitempty"`
	Name   string `yaml:"name"`
	Offset uint64 `yaml:"offset,omitempty"`
	// Size is the byte size of one element. Registers default to 4,
	// composites default to the span of their children.
	Size   uint64 `yaml:"size,omitempty"`
	Array  Dims   `yaml:"array,omitempty"`
	Stride uint64 `yaml:"stride,omitempty"`
	// Encode is set on fields only.
	Encode   *EncodeRef `yaml:"encode,omitempty"`
	Fields   []NodeSpec `yaml:"fields,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`
}

// EnumSpec is the YAML form of an enumeration.
type EnumSpec struct {
	Name    string       `yaml:"name"`
	Members []MemberSpec `yaml:"members"`
}

// MemberSpec is the YAML form of one enumeration member.
type MemberSpec struct {
	Name  string `yaml:"name"`
	Value uint64 `yaml:"value"`
	Desc  string `yaml:"desc,omitempty"`
}

// Dims holds array dimensions. Accepts a single integer or a list.
type Dims []int

// EncodeRef points at an enumeration, either by name (a reference into
// File.Enums) or inline.
type EncodeRef struct {
	Ref    string
	Inline *EnumSpec
}

// UnmarshalYAML implements custom YAML unmarshaling for Dims.
func (d *Dims) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var n int

		err := node.Decode(&n)
		if err != nil {
			return err
		}

		*d = Dims{n}

		return nil

	case yaml.SequenceNode:
		var arr []int

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*d = arr

		return nil

	default:
		return fmt.Errorf("expected integer or array, got %v", node.Kind)
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for EncodeRef.
// Accepts either an enum name or an inline enum definition.
func (e *EncodeRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&e.Ref)

	case yaml.MappingNode:
		var spec EnumSpec

		err := node.Decode(&spec)
		if err != nil {
			return err
		}

		e.Inline = &spec

		return nil

	default:
		return fmt.Errorf("expected enum name or mapping, got %v", node.Kind)
	}
}
