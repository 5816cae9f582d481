package export

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawheader/internal/diagnostic"
	"rawheader/internal/rdl"
)

const chipYAML = `
addrmap:
  name: chip
  size: 256
  children:
    - kind: reg
      name: ctrl
      offset: 4
      fields:
        - name: mode
          encode:
            name: mode_e
            members:
              - {name: off, value: 0, desc: Disabled}
              - {name: on, value: 1}
    - {kind: mem, name: buf, offset: 16, size: 16, array: 2}
    - {kind: signal, name: irq}
`

func loadChip(t *testing.T) *rdl.Node {
	t.Helper()

	top, err := rdl.Parse([]byte(chipYAML))
	require.NoError(t, err)

	return top
}

func TestRenderC(t *testing.T) {
	opts := DefaultOptions()
	opts.License = `Copyright ACME\nSPDX-License-Identifier: Apache-2.0`

	res, err := Render(loadChip(t), opts)
	require.NoError(t, err)

	out := string(res.Content)
	assert.Contains(t, out, "// Copyright ACME\n// SPDX-License-Identifier: Apache-2.0\n")
	assert.Contains(t, out, "#ifndef CHIP_H_\n#define CHIP_H_\n")
	assert.Regexp(t, `#define CHIP_BASE_ADDR\s+0x00000000\n`, out)
	assert.Regexp(t, `#define CHIP_SIZE\s+0x00000100\n`, out)
	assert.Regexp(t, `#define CHIP_CTRL_REG_ADDR\s+0x00000004\n`, out)
	assert.Regexp(t, `#define CHIP_CTRL_REG_OFFSET 0x00000004\n`, out)
	assert.Regexp(t, `#define CHIP_BUF_1_BASE_ADDR 0x00000020\n`, out)
	assert.Contains(t, out, "  MODE_E_OFF = 0, // Disabled\n  MODE_E_ON = 1,\n} mode_e_t;")
	assert.Contains(t, out, "#endif // CHIP_H_")

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownNodeKind, res.Diagnostics.Warnings[0].Code)
}

func TestRenderBaseNameOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseName = "soc"

	res, err := Render(loadChip(t), opts)
	require.NoError(t, err)

	out := string(res.Content)
	assert.Contains(t, out, "#ifndef SOC_H_")
	// constant names still follow the instance hierarchy
	assert.Contains(t, out, "CHIP_CTRL_REG_ADDR")
	assert.NotContains(t, out, "// Copyright")
}

func TestRenderFormats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{
			format: FormatSVH,
			want: []string{
				"`ifndef CHIP_SVH_",
				"`define CHIP_BUF_0_BASE_ADDR 'h00000010",
				"`define MODE_E_OFF 0 // Disabled",
				"`endif // CHIP_SVH_",
			},
		},
		{
			format: FormatSVPkg,
			want: []string{
				"package chip_pkg;",
				"localparam longint unsigned CHIP_CTRL_REG_OFFSET = 64'h00000004;",
				"MODE_E_OFF = 0 /* Disabled */,\n    MODE_E_ON = 1\n  } mode_e_t;",
				"endpackage : chip_pkg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Format = tt.format

			res, err := Render(loadChip(t), opts)
			require.NoError(t, err)

			for _, w := range tt.want {
				assert.Contains(t, string(res.Content), w)
			}
		})
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.tpl")
	tpl := `{{range .Blocks}}{{range .}}{{.Name}}={{.Value}}
{{end}}{{end}}`
	require.NoError(t, os.WriteFile(path, []byte(tpl), 0o644))

	opts := Options{Format: "ignored", TemplatePath: path}

	res, err := Render(loadChip(t), opts)
	require.NoError(t, err)
	assert.Equal(t, "CHIP_BASE_ADDR=0\nCHIP_SIZE=256\n"+
		"CHIP_CTRL_REG_ADDR=4\nCHIP_CTRL_REG_OFFSET=4\n"+
		"CHIP_BUF_0_BASE_ADDR=16\nCHIP_BUF_0_SIZE=16\n"+
		"CHIP_BUF_1_BASE_ADDR=32\nCHIP_BUF_1_SIZE=16\n", string(res.Content))
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(loadChip(t), Options{Format: "vhdl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "vhdl"`)

	_, err = Render(loadChip(t), Options{TemplatePath: filepath.Join(t.TempDir(), "nope.tpl")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template")

	bad := filepath.Join(t.TempDir(), "bad.tpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{.Missing"), 0o644))

	_, err = Render(loadChip(t), Options{TemplatePath: bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template bad.tpl")
}

func TestExport(t *testing.T) {
	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	out := filepath.Join(t.TempDir(), "include", "chip.h")
	opts := DefaultOptions()
	opts.Output = out

	diags, err := Export(loadChip(t), opts, logger)
	require.NoError(t, err)
	assert.Len(t, diags.Warnings, 1)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#define CHIP_H_")

	assert.Contains(t, logs.String(), "code=UNKNOWN_NODE_KIND")
	assert.Contains(t, logs.String(), "header written")

	_, err = Export(loadChip(t), DefaultOptions(), logger)
	require.EqualError(t, err, "no output path given")
}

func TestRenderMultiLineDescription(t *testing.T) {
	top, err := rdl.Parse([]byte(`
addrmap:
  name: chip
  children:
    - kind: reg
      name: ctrl
      fields:
        - name: mode
          encode:
            name: mode_e
            members:
              - {name: off, value: 0, desc: "Disabled.\nClears the FIFO."}
              - {name: on, value: 1, desc: "see */ below"}
`))
	require.NoError(t, err)

	tests := []struct {
		format string
		want   []string
	}{
		{
			format: FormatC,
			want: []string{
				"  MODE_E_OFF = 0, // Disabled. Clears the FIFO.\n",
				"  MODE_E_ON = 1, // see * / below\n",
			},
		},
		{
			format: FormatSVH,
			want: []string{
				"`define MODE_E_OFF 0 // Disabled. Clears the FIFO.\n",
				"`define MODE_E_ON 1 // see * / below\n",
			},
		},
		{
			format: FormatSVPkg,
			want: []string{
				"MODE_E_OFF = 0 /* Disabled. Clears the FIFO. */,\n",
				"MODE_E_ON = 1 /* see * / below */\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Format = tt.format

			res, err := Render(top, opts)
			require.NoError(t, err)

			out := string(res.Content)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}

			assert.NotContains(t, out, "\nClears the FIFO.")
		})
	}
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "a b c", commentText("a\n  b\r\n\tc\n"))
	assert.Equal(t, "x * / y", commentText("x */ y"))
	assert.Equal(t, "ends with", commentText(`ends with \`))
}

func TestExportStrict(t *testing.T) {
	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, nil))

	out := filepath.Join(t.TempDir(), "chip.h")
	opts := DefaultOptions()
	opts.Output = out
	opts.Strict = true

	diags, err := Export(loadChip(t), opts, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), diagnostic.CodeUnknownNodeKind)
	assert.Empty(t, diags.Warnings)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "chip.irq", diags.Errors[0].Path)
	assert.Contains(t, logs.String(), "level=ERROR")

	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
