// Package deferred implements memoized, lazily-computed buffer cells.
//
// A Cell holds either materialized data or a zero-argument producer that is
// invoked exactly once, on first read. Cells compose: a producer may force
// other cells, so an entire dependency graph of derived buffers can be built
// without computing anything, and only the cells actually read are ever
// materialized. Forcing a cell fully materializes its transitive dependencies
// depth-first before its own producer runs; cycles are a programming error.
//
// Producers must be pure. Cells built independently from the same inputs are
// not identity-deduplicated; each materializes on its own, and the design
// assumes (but does not enforce) that duplicate derivations agree.
//
// Cells are safe for concurrent forcing: materialization is guarded by
// sync.Once, so concurrent readers observe exactly-once production.
package deferred
