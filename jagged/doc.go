// Package jagged provides offsets arithmetic and ragged array types.
//
// A jagged array stores variable-length per-event sequences as a flat
// content buffer plus an offsets array of length events+1. offsets[e] and
// offsets[e+1] delimit event e's segment in the content buffer. All index
// kernels in the module build on these two invariants:
//
//   - offsets[0] == 0
//   - offsets is monotonically non-decreasing; offsets[len-1] is the total
//     flat length
//
// All functions allocate fresh output buffers and never mutate their inputs.
package jagged
