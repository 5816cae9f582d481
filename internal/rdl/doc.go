// Package rdl provides the read-only model of an elaborated register
// address map: addrmaps, regfiles, registers, memories and fields with
// their absolute addresses already resolved.
//
// Key types:
//   - Kind: closed set of node kinds (addrmap/regfile/reg/mem/field/unknown)
//   - Node: one declared instance, possibly arrayed
//   - Enum: a value enumeration attached to a field through "encode"
//
// Trees are loaded from the YAML dump of an upstream register compiler
// (see LoadFile). Nothing in this package mutates a loaded tree; Unrolled
// returns fresh copies.
package rdl
