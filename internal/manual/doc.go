// Package manual reads and writes manual subtitle block files.
//
// A block starts at a line beginning with '>' and runs until the next such
// line or end of input. Lines before the first delimiter are ignored, and
// blocks that trim to nothing are dropped. Block order is file order, which
// is the only thing tying a block to a timeline element later on.
package manual
