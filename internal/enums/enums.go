// Package enums collects the value enumerations referenced by fields of an
// address map, one group per enumeration type name.
package enums

import (
	"fmt"
	"strings"

	"rawheader/internal/diagnostic"
	"rawheader/internal/rdl"
)

// Group is one enumeration ready for rendering.
type Group struct {
	Name    string
	Choices []Choice
}

// Choice is one member of an enumeration.
type Choice struct {
	Name  string
	Value uint64
	Desc  string
}

// Collect walks every field below top in tree order and returns one Group
// per distinct upper-cased enumeration type name. The first declaration of
// a name wins; a later declaration with different members is reported as
// a warning, once per name, and otherwise ignored.
func Collect(top *rdl.Node) ([]Group, diagnostic.Diagnostics) {
	var (
		groups []Group
		diags  diagnostic.Diagnostics
	)

	seen := make(map[string]*rdl.Enum)
	warned := make(map[string]bool)

	for path, field := range top.Descendants(rdl.KindField, true) {
		enum := field.Encode
		if enum == nil {
			continue
		}

		name := strings.ToUpper(enum.TypeName)

		if first, ok := seen[name]; ok {
			if !warned[name] && !first.Equal(enum) {
				warned[name] = true
				diags.AddWarning(diagnostic.CodeEnumRedefined,
					fmt.Sprintf("enum %s redefined with different members, keeping first definition", name),
					path)
			}

			continue
		}

		seen[name] = enum
		groups = append(groups, toGroup(name, enum))
	}

	return groups, diags
}

func toGroup(name string, enum *rdl.Enum) Group {
	g := Group{Name: name, Choices: make([]Choice, 0, len(enum.Members))}
	for _, m := range enum.Members {
		g.Choices = append(g.Choices, Choice{
			Name:  strings.ToUpper(m.Name),
			Value: m.Value,
			Desc:  m.Desc,
		})
	}

	return g
}
