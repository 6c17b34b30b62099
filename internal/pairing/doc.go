// Package pairing aligns manual text blocks with kept timeline elements.
//
// Alignment is positional: there is no identifier linking a block to an
// element, only order after independent filtering. Count mismatches never
// fail; they produce warnings and a truncated or partially empty result so
// the user always gets output to inspect.
//
// Plain pairing zips blocks with plain elements. Mixed pairing walks all
// kept elements in start order, lets styled elements supply their own text,
// and consumes manual blocks through one shared cursor otherwise.
package pairing
