// Package flatten turns an elaborated address map into an ordered list of
// named integer constants: base addresses and sizes for blocks and
// memories, absolute addresses and offsets for registers.
//
// Names are built from the upper-cased instance names of all ancestors
// joined by "_", so "chip.top.reg0" yields CHIP_TOP_REG0_REG_ADDR.
// Array elements append each index as an extra segment (BUF_0, BUF_1).
//
// The output keeps the shape of the input: a Block is a list of Groups,
// where empty groups are spacers separating one block's constants from
// the next when rendered.
package flatten
