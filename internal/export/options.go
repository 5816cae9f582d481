package export

import (
	"fmt"
	"slices"
	"strings"
)

// Output formats.
const (
	FormatC     = "c"
	FormatSVH   = "svh"
	FormatSVPkg = "svpkg"
)

// Formats lists every supported output format.
var Formats = []string{FormatC, FormatSVH, FormatSVPkg}

// Options configures one export.
type Options struct {
	// Format selects the embedded template. Ignored when TemplatePath is set.
	Format string
	// TemplatePath points at a custom template file.
	TemplatePath string
	// BaseName overrides the top-level name used in the output.
	// Defaults to the instance name of the top node.
	BaseName string
	// License is placed at the top of the output. A literal `\n` is
	// turned into a line break.
	License string
	// Output is the path of the generated file.
	Output string
	// Strict turns every diagnostic warning into an error, which makes
	// Export fail without writing the output.
	Strict bool
}

// DefaultOptions returns the default export options.
func DefaultOptions() Options {
	return Options{Format: FormatC}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.TemplatePath == "" && !slices.Contains(Formats, o.Format) {
		return fmt.Errorf("unknown format %q, expected one of %s", o.Format, strings.Join(Formats, ", "))
	}

	return nil
}

// licenseText expands escaped line breaks in the license string.
func (o *Options) licenseText() string {
	return strings.ReplaceAll(o.License, `\n`, "\n")
}
