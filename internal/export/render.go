package export

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"rawheader/internal/diagnostic"
	"rawheader/internal/enums"
	"rawheader/internal/flatten"
	"rawheader/internal/rdl"
)

//go:embed templates/*.tpl
var templateFS embed.FS

var templateFiles = map[string]string{
	FormatC:     "templates/c_header.tpl",
	FormatSVH:   "templates/svh.tpl",
	FormatSVPkg: "templates/svpkg.tpl",
}

// templateData is what every template is executed with.
type templateData struct {
	TopName   string
	License   string
	Blocks    flatten.Block
	Enums     []enums.Group
	NameWidth int
}

// Result is the outcome of rendering one address map.
type Result struct {
	Content     []byte
	Diagnostics diagnostic.Diagnostics
}

var funcs = template.FuncMap{
	"pad": func(s string, width int) string {
		if len(s) >= width {
			return s
		}

		return s + strings.Repeat(" ", width-len(s))
	},
	"hex": func(v uint64) string {
		return fmt.Sprintf("0x%08x", v)
	},
	"svhex": func(v uint64) string {
		return fmt.Sprintf("'h%08x", v)
	},
	"lines": func(s string) []string {
		return strings.Split(strings.TrimRight(s, "\n"), "\n")
	},
	"comment": commentText,
	"upper":   strings.ToUpper,
	"lower":   strings.ToLower,
}

// commentText folds s onto a single line so it can sit in a trailing
// line or block comment, and breaks up any block comment terminator.
func commentText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSpace(strings.TrimRight(s, `\`))

	return strings.ReplaceAll(s, "*/", "* /")
}

// Render flattens top, collects its enumerations and executes the
// selected template over the result.
func Render(top *rdl.Node, opts Options) (*Result, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	tmpl, err := loadTemplate(opts)
	if err != nil {
		return nil, err
	}

	var res Result

	blocks, diags := flatten.Flatten(top, "")
	res.Diagnostics.Merge(diags)

	groups, diags := enums.Collect(top)
	res.Diagnostics.Merge(diags)

	if opts.Strict {
		res.Diagnostics.PromoteWarnings()
	}

	topName := opts.BaseName
	if topName == "" {
		topName = top.InstName
	}

	data := &templateData{
		TopName:   strings.ToUpper(topName),
		License:   opts.licenseText(),
		Blocks:    blocks,
		Enums:     groups,
		NameWidth: blocks.NameWidth(),
	}

	var buf bytes.Buffer

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmpl.Name(), err)
	}

	res.Content = buf.Bytes()

	return &res, nil
}

// Export renders top and writes the result to opts.Output. Diagnostics
// are logged to logger and returned; if any of them is an error, nothing
// is written.
func Export(top *rdl.Node, opts Options, logger *slog.Logger) (diagnostic.Diagnostics, error) {
	if opts.Output == "" {
		return diagnostic.Diagnostics{}, errors.New("no output path given")
	}

	res, err := Render(top, opts)
	if err != nil {
		return diagnostic.Diagnostics{}, err
	}

	res.Diagnostics.Log(logger)

	if res.Diagnostics.HasErrors() {
		return res.Diagnostics, res.Diagnostics.Error()
	}

	err = WriteFile(opts.Output, res.Content)
	if err != nil {
		return res.Diagnostics, err
	}

	logger.Debug("header written", "path", opts.Output, "bytes", len(res.Content))

	return res.Diagnostics, nil
}

func loadTemplate(opts Options) (*template.Template, error) {
	if opts.TemplatePath != "" {
		data, err := os.ReadFile(opts.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", opts.TemplatePath, err)
		}

		return parseTemplate(filepath.Base(opts.TemplatePath), string(data))
	}

	data, err := templateFS.ReadFile(templateFiles[opts.Format])
	if err != nil {
		return nil, fmt.Errorf("loading %s template: %w", opts.Format, err)
	}

	return parseTemplate(opts.Format, string(data))
}

func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	return tmpl, nil
}
