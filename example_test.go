package jaggedzip_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/jaggedzip"
)

func ExampleBuilder_Build() {
	schema := jaggedzip.Schema{
		Kinds:     map[string]jaggedzip.Kind{"Muon": jaggedzip.KindCandidate},
		CrossRefs: map[string]string{"Muon_partIdx": "Part"},
	}

	builder := jaggedzip.NewBuilder(schema, jaggedzip.WithLogger(nil))

	ds, err := builder.Build(map[string]jaggedzip.Field{
		"nMuon":        jaggedzip.Int64s([]int64{2, 0, 3}),
		"Muon_partIdx": jaggedzip.Int64s([]int64{0, -1, 1, 2, -1}),
		"nPart":        jaggedzip.Int64s([]int64{2, 0, 3}),
	})
	if err != nil {
		log.Fatal(err)
	}

	muon, _ := ds.Collection("Muon")
	global, _ := muon.JaggedField("partIdxG")

	// Nothing has been computed yet; forcing resolves the chunk-global index.
	resolved, err := global.Materialize()
	if err != nil {
		log.Fatal(err)
	}
	for e := range resolved.Events() {
		fmt.Println(resolved.Event(e))
	}

	if err := ds.ForceAll(context.Background()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// [0 -1]
	// []
	// [3 4 -1]
}
