// Package columnar provides an in-memory column store whose columns are held
// as compressed blocks and decoded on demand into deferred cells.
//
// Columns are named, homogeneously-typed scalar buffers. Reading a column
// returns an unmaterialized cell with its row count declared up front; the
// block is only decompressed when the cell is forced. The store keeps a
// bitmap access log of the columns actually materialized, so callers can
// verify that declaring a derivation graph touched no storage.
package columnar
