// Package diagnostic provides structured warnings and errors reported
// while flattening an address map.
//
// Diagnostics never abort a traversal. Callers decide what to do with
// them once the pass is over: log them, fail on errors, or ignore them.
//
// Key codes:
//   - UNKNOWN_NODE_KIND: a node outside the supported kind set was skipped
//   - ENUM_REDEFINED: an enumeration name was reused with different members
package diagnostic
