// Package jaggedzip reshapes flat tables of named columnar buffers, produced
// from per-event detector data, into typed hierarchical collections with
// resolved cross-references between them.
//
// The core is an index algebra over jagged (ragged per-event) buffers and a
// set of genealogy kernels for per-event decay trees, combined with a
// deferred-buffer layer: every derived buffer can be declared as a lazy,
// memoized cell and is only computed when a consumer actually reads it.
//
// # Quick start
//
//	schema := jaggedzip.Schema{
//	    Kinds:     map[string]jaggedzip.Kind{"Part": jaggedzip.KindParticle},
//	    CrossRefs: map[string]string{"Muon_partIdx": "Part"},
//	    Genealogy: map[string]jaggedzip.GenealogySpec{
//	        "Part": {ParentField: "parentIdx", TagField: "species"},
//	    },
//	    EventIDs: []string{"event"},
//	}
//
//	ds, err := jaggedzip.NewBuilder(schema).Build(map[string]jaggedzip.Field{
//	    "event":          jaggedzip.Int64s([]int64{1, 2}),
//	    "nPart":          jaggedzip.Int64s(nPart),
//	    "Part_parentIdx": jaggedzip.Int64s(parentIdx),
//	    "Part_species":   jaggedzip.Int32s(species),
//	    "nMuon":          jaggedzip.Int64s(nMuon),
//	    "Muon_partIdx":   jaggedzip.Int64s(partIdx),
//	})
//
// Build materializes nothing: all derived fields (global cross-reference
// indices, children lists, distinct ancestors) are deferred cells. Reading a
// field forces exactly the cells it depends on.
//
// The lower layers are usable on their own: jagged (offsets arithmetic and
// ragged array types), kernel (eager and lazy index/genealogy kernels),
// deferred (memoized lazy cells), and columnar (a compressed in-memory column
// store that produces deferred cells).
package jaggedzip
