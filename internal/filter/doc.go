// Package filter partitions timeline elements into kept and ignored lists.
//
// Styled elements can be excluded wholesale, and an effect heuristic drops
// transitions by name pattern or by a short duration paired with a generic
// name. Filtering is order stable: it only removes.
package filter
