// Package kernel implements the index algebra and genealogy kernels that
// turn per-event local indices into chunk-wide global indices and derive
// parent/child relationships within per-event decay trees.
//
// All kernels come in two forms: an eager form operating on concrete buffers,
// and a Lazy form operating on deferred cells. A Lazy kernel returns an
// unmaterialized cell whose producer forces its inputs and then applies the
// eager kernel, so whole derivation graphs can be declared without computing
// anything.
//
// Genealogy kernels take parent indices that are global (already offset into
// the flat content buffer). This keeps the arithmetic uniform across event
// boundaries; the kernels themselves restrict scans to one event's segment.
package kernel
