package rdl

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// Version is the only dump format version understood by Resolve.
	Version = "1"

	defaultRegSize = 4
)

// LoadFile loads an elaborated address map from a YAML file.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read address map %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data and resolves it into a Node tree rooted at the
// top-level addrmap.
func Parse(data []byte) (*Node, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse address map YAML: %w", err)
	}

	applyDefaults(&f)

	return Resolve(&f)
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = Version
	}

	if f.Addrmap.Kind == "" {
		f.Addrmap.Kind = "addrmap"
	}
}

// Resolve converts a decoded File into a Node tree with absolute addresses.
func Resolve(f *File) (*Node, error) {
	if f.Version != Version {
		return nil, fmt.Errorf("unsupported address map version %q, expected %q", f.Version, Version)
	}

	if f.Addrmap.Name == "" {
		return nil, errors.New("address map has no top-level addrmap name")
	}

	r := resolver{enums: make(map[string]*Enum, len(f.Enums))}

	for _, es := range f.Enums {
		if _, dup := r.enums[es.Name]; dup {
			return nil, fmt.Errorf("enum %s declared twice", es.Name)
		}

		r.enums[es.Name] = toEnum(es)
	}

	return r.node(&f.Addrmap, 0, f.Addrmap.Name)
}

type resolver struct {
	enums map[string]*Enum
}

func (r *resolver) node(spec *NodeSpec, parentAddr uint64, path string) (*Node, error) {
	if spec.Kind == "" {
		return nil, fmt.Errorf("%s: missing kind", path)
	}

	if spec.Name == "" {
		return nil, fmt.Errorf("%s: missing name", path)
	}

	n := &Node{
		Kind:     ParseKind(spec.Kind),
		TypeName: spec.Kind,
		InstName: spec.Name,
		Address:  parentAddr + spec.Offset,
		Offset:   spec.Offset,
		Size:     spec.Size,
	}

	for _, d := range spec.Array {
		if d <= 0 {
			return nil, fmt.Errorf("%s: invalid array dimension %d", path, d)
		}
	}

	if len(spec.Array) > 0 {
		n.Dims = append([]int(nil), spec.Array...)
	}

	if spec.Encode != nil {
		if n.Kind != KindField {
			return nil, fmt.Errorf("%s: encode is only allowed on fields", path)
		}

		enum, err := r.encode(spec.Encode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		n.Encode = enum
	}

	// fields come before sub-blocks, matching declaration order in a register
	specs := append(append([]NodeSpec(nil), spec.Fields...), spec.Children...)
	for i := range specs {
		if i < len(spec.Fields) && specs[i].Kind == "" {
			specs[i].Kind = "field"
		}

		child, err := r.node(&specs[i], n.Address, path+"."+specs[i].Name)
		if err != nil {
			return nil, err
		}

		n.Children = append(n.Children, child)
	}

	if n.Size == 0 {
		switch {
		case n.Kind == KindReg:
			n.Size = defaultRegSize
		case n.Kind.IsComposite():
			n.Size = span(n.Children)
		}
	}

	n.Stride = spec.Stride
	if n.Stride == 0 {
		n.Stride = n.Size
	}

	return n, nil
}

func (r *resolver) encode(ref *EncodeRef) (*Enum, error) {
	if ref.Inline != nil {
		return toEnum(*ref.Inline), nil
	}

	enum, ok := r.enums[ref.Ref]
	if !ok {
		return nil, fmt.Errorf("unknown enum %q", ref.Ref)
	}

	return enum, nil
}

// span returns the byte extent covered by the given children, measured
// from the parent's base.
func span(children []*Node) uint64 {
	var end uint64

	for _, c := range children {
		if c.Kind == KindField {
			continue
		}

		last := c.Offset + uint64(c.ElementCount()-1)*c.Stride + c.Size
		end = max(end, last)
	}

	return end
}

func toEnum(es EnumSpec) *Enum {
	e := &Enum{TypeName: es.Name}
	for _, m := range es.Members {
		e.Members = append(e.Members, EnumMember(m))
	}

	return e
}
