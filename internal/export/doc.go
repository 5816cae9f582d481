// Package export renders flattened address-map constants and enumerations
// into header files.
//
// Three output dialects ship embedded:
//   - c:     C header with #define constants and typedef'd enums
//   - svh:   SystemVerilog include file with `define macros
//   - svpkg: SystemVerilog package with localparams and typedef'd enums
//
// A custom text/template file may be supplied instead. Templates receive
// TopName, License, Blocks, Enums and NameWidth, plus the helper
// functions pad, hex, svhex, lines, upper and lower.
package export
