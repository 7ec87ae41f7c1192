// Package app wires the record pipeline together for one invocation.
//
// Run picks between two execution paths. The fast path streams bytes
// straight from a single forward input to the output, touching records
// only for escape formatting. The framed path opens every input as a
// record stream, applies the filter to each, merges multiple inputs
// chronologically, and hands the result to either the renderer or the
// interactive pager.
package app
