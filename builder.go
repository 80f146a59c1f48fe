package jaggedzip

import (
	"maps"
	"slices"
	"strings"

	"github.com/hupe1980/jaggedzip/deferred"
	"github.com/hupe1980/jaggedzip/jagged"
	"github.com/hupe1980/jaggedzip/kernel"
)

// Builder assembles flat field tables into datasets according to a Schema.
//
// A builder is stateless between calls; the same builder can assemble any
// number of chunks.
type Builder struct {
	schema Schema
	opts   options
}

// NewBuilder creates a Builder for the given schema.
func NewBuilder(schema Schema, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{schema: schema.withDefaults(), opts: o}
}

// Build assembles a dataset from named flat buffers.
//
// Collections are discovered by naming convention: a field "X_y" is member
// "y" of collection "X"; a bare field "X" is a singleton; "<CountPrefix>X"
// holds X's per-event counts. Declared cross-references become lazy global
// index fields (suffix "G"), nested and counts-derived indices become lazy
// doubly-jagged fields, and genealogy collections gain lazy children /
// distinct-parent / deep-distinct-children fields.
//
// Build materializes nothing: every derived field is an unforced deferred
// cell. Errors inside derivations surface when the cells are forced.
func (b *Builder) Build(fields map[string]Field) (*Dataset, error) {
	st := &buildState{
		schema:  b.schema,
		opts:    b.opts,
		fields:  fields,
		counts:  make(map[string]*deferred.Cell[[]int64]),
		offsets: make(map[string]*deferred.Cell[jagged.Offsets]),
		derived: make(map[string]map[string]any),
		order:   make(map[string][]string),
	}

	st.discover()

	if err := st.checkEventIDs(); err != nil {
		b.opts.logger.LogBuild(0, 0, err)
		return nil, err
	}

	st.resolveCrossRefs()
	st.resolveNestedItems()
	st.resolveNestedIndexItems()
	st.resolveGenealogy()

	ds := st.assemble(b.opts.forceLimit)
	b.opts.logger.LogBuild(len(ds.collections), st.derivedCount, nil)
	return ds, nil
}

type buildState struct {
	schema Schema
	opts   options
	fields map[string]Field

	members  map[string][]string // collection -> member field names
	bare     map[string]bool     // bare fields that are not counters
	counters map[string]string   // collection -> counter field name

	counts  map[string]*deferred.Cell[[]int64]
	offsets map[string]*deferred.Cell[jagged.Offsets]

	derived      map[string]map[string]any // collection -> local name -> cell
	order        map[string][]string       // insertion order of derived fields
	derivedCount int
}

func collectionOf(field string) string {
	if i := strings.Index(field, "_"); i > 0 {
		return field[:i]
	}
	return field
}

func localNameOf(field string) string {
	if i := strings.Index(field, "_"); i > 0 {
		return field[i+1:]
	}
	return field
}

// discover groups fields into collections and identifies counter fields.
func (st *buildState) discover() {
	st.members = make(map[string][]string)
	st.bare = make(map[string]bool)
	st.counters = make(map[string]string)

	for name := range st.fields {
		if i := strings.Index(name, "_"); i > 0 {
			coll := name[:i]
			st.members[coll] = append(st.members[coll], name)
		} else {
			st.bare[name] = true
		}
	}
	for coll := range st.members {
		slices.Sort(st.members[coll])
	}

	// A bare field "<prefix>X" is a counter only when X is plausibly a
	// collection; otherwise it is an ordinary singleton whose name happens
	// to start with the prefix.
	prefix := st.schema.CountPrefix
	for name := range st.bare {
		if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
			continue
		}
		coll := name[len(prefix):]
		if len(st.members[coll]) > 0 || st.bare[coll] || st.schemaKnows(coll) {
			st.counters[coll] = name
		}
	}
	for _, counter := range st.counters {
		delete(st.bare, counter)
	}
}

func (st *buildState) schemaKnows(coll string) bool {
	if _, ok := st.schema.Kinds[coll]; ok {
		return true
	}
	if _, ok := st.schema.Genealogy[coll]; ok {
		return true
	}
	for _, target := range st.schema.CrossRefs {
		if target == coll {
			return true
		}
	}
	for _, item := range st.schema.NestedIndexItems {
		if item.Target == coll {
			return true
		}
	}
	return false
}

func (st *buildState) checkEventIDs() error {
	var missing []string
	for _, id := range st.schema.EventIDs {
		if _, ok := st.fields[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if st.opts.errorOnMissingEventIDs {
		return &ErrMissingEventIDs{Missing: missing}
	}
	st.opts.logger.Warn("missing event ID fields", "missing", missing)
	return nil
}

// countsCell returns the memoized counts cell of a collection.
func (st *buildState) countsCell(coll string) (*deferred.Cell[[]int64], bool) {
	if c, ok := st.counts[coll]; ok {
		return c, true
	}
	counter, ok := st.counters[coll]
	if !ok {
		return nil, false
	}
	c, ok := st.fields[counter].int64Cell()
	if !ok {
		return nil, false
	}
	st.counts[coll] = c
	return c, true
}

// offsetsCell returns the memoized offsets cell of a collection.
func (st *buildState) offsetsCell(coll string) (*deferred.Cell[jagged.Offsets], bool) {
	if c, ok := st.offsets[coll]; ok {
		return c, true
	}
	counts, ok := st.countsCell(coll)
	if !ok {
		return nil, false
	}
	c := kernel.CountsToOffsetsLazy(counts)
	st.offsets[coll] = c
	return c, true
}

// jaggedCell wraps a flat content cell with its collection's offsets.
func (st *buildState) jaggedCell(coll string, content *deferred.Cell[[]int64]) (*deferred.Cell[jagged.Ints], bool) {
	offsets, ok := st.offsetsCell(coll)
	if !ok {
		return nil, false
	}
	cell := deferred.Map2(offsets, content, func(off jagged.Offsets, cont []int64) (jagged.Ints, error) {
		a := jagged.Ints{Offsets: off, Content: cont}
		if err := a.Validate(); err != nil {
			return jagged.Ints{}, err
		}
		return a, nil
	}, deferred.WithLengthFunc(content.DeclaredLength))
	return cell, true
}

func (st *buildState) addDerived(coll, name string, cell any) {
	if st.derived[coll] == nil {
		st.derived[coll] = make(map[string]any)
	}
	if _, ok := st.derived[coll][name]; !ok {
		st.order[coll] = append(st.order[coll], name)
		st.derivedCount++
	}
	st.derived[coll][name] = cell
}

// resolveCrossRefs converts declared local index fields into lazy global
// index fields so that arbitrarily sliced events can still resolve the
// indirection.
func (st *buildState) resolveCrossRefs() {
	for _, indexer := range slices.Sorted(maps.Keys(st.schema.CrossRefs)) {
		target := st.schema.CrossRefs[indexer]
		src := collectionOf(indexer)

		field, ok := st.fields[indexer]
		if !ok {
			if st.opts.warnMissingCrossRefs {
				st.opts.logger.LogMissingCrossRef(indexer, target, "index field missing")
			}
			continue
		}
		targetCounts, ok := st.countsCell(target)
		if !ok {
			if st.opts.warnMissingCrossRefs {
				st.opts.logger.LogMissingCrossRef(indexer, target, "target counts missing")
			}
			continue
		}
		content, ok := field.int64Cell()
		if !ok {
			if st.opts.warnMissingCrossRefs {
				st.opts.logger.LogMissingCrossRef(indexer, target, "index field is not int64")
			}
			continue
		}
		index, ok := st.jaggedCell(src, content)
		if !ok {
			if st.opts.warnMissingCrossRefs {
				st.opts.logger.LogMissingCrossRef(indexer, target, "source counts missing")
			}
			continue
		}

		st.addDerived(src, localNameOf(indexer)+"G", kernel.LocalToGlobalLazy(index, targetCounts))
	}
}

// resolveNestedItems interleaves fixed sets of global index fields into
// doubly-jagged fields.
func (st *buildState) resolveNestedItems() {
	for _, name := range slices.Sorted(maps.Keys(st.schema.NestedItems)) {
		coll := collectionOf(name)

		indexers := st.schema.NestedItems[name]
		cells := make([]*deferred.Cell[jagged.Ints], 0, len(indexers))
		for _, indexer := range indexers {
			cell, ok := st.derived[collectionOf(indexer)][localNameOf(indexer)].(*deferred.Cell[jagged.Ints])
			if !ok {
				cells = nil
				break
			}
			cells = append(cells, cell)
		}
		if len(cells) == 0 {
			continue
		}

		st.addDerived(coll, localNameOf(name), kernel.NestedIndexLazy(cells))
	}
}

// resolveNestedIndexItems derives doubly-jagged indices by partitioning a
// target collection's content range according to per-item counts.
func (st *buildState) resolveNestedIndexItems() {
	for _, name := range slices.Sorted(maps.Keys(st.schema.NestedIndexItems)) {
		item := st.schema.NestedIndexItems[name]
		coll := collectionOf(name)

		field, ok := st.fields[item.CountsField]
		if !ok {
			continue
		}
		targetCounts, ok := st.countsCell(item.Target)
		if !ok {
			continue
		}
		content, ok := field.int64Cell()
		if !ok {
			continue
		}
		localCounts, ok := st.jaggedCell(collectionOf(item.CountsField), content)
		if !ok {
			continue
		}

		st.addDerived(coll, localNameOf(name), kernel.CountsToNestedIndexLazy(localCounts, targetCounts))
	}
}

// resolveGenealogy derives the decay-tree fields of particle collections.
func (st *buildState) resolveGenealogy() {
	for _, coll := range slices.Sorted(maps.Keys(st.schema.Genealogy)) {
		spec := st.schema.Genealogy[coll]

		// Genealogy on an explicitly non-particle kind is a schema mistake.
		if !st.schema.kindOf(coll, KindParticle).HasGenealogy() {
			st.opts.logger.Warn("genealogy declared for non-particle collection", "collection", coll)
			continue
		}

		offsets, ok := st.offsetsCell(coll)
		if !ok {
			continue
		}
		tagField, ok := st.fields[coll+"_"+spec.TagField]
		if !ok {
			continue
		}
		tag, ok := tagField.int32Cell()
		if !ok {
			continue
		}

		// The parent global index may already exist as a self-referential
		// cross-reference; derive it here otherwise.
		parentGlobal, ok := st.derived[coll][spec.ParentField+"G"].(*deferred.Cell[jagged.Ints])
		if !ok {
			parentField, present := st.fields[coll+"_"+spec.ParentField]
			if !present {
				continue
			}
			content, isInt := parentField.int64Cell()
			if !isInt {
				continue
			}
			index, composed := st.jaggedCell(coll, content)
			if !composed {
				continue
			}
			counts, _ := st.countsCell(coll)
			parentGlobal = kernel.LocalToGlobalLazy(index, counts)
			st.addDerived(coll, spec.ParentField+"G", parentGlobal)
		}

		parent := deferred.Map(parentGlobal, func(a jagged.Ints) ([]int64, error) {
			return a.Content, nil
		}, deferred.WithLengthFunc(parentGlobal.DeclaredLength))

		distinctParent := kernel.DistinctParentLazy(parent, tag)

		st.addDerived(coll, "distinctParentIdxG", distinctParent)
		st.addDerived(coll, "childrenIdxG", kernel.ChildrenLazy(offsets, parent))
		st.addDerived(coll, "distinctChildrenIdxG", kernel.ChildrenLazy(offsets, distinctParent))
		st.addDerived(coll, "distinctChildrenDeepIdxG", kernel.DistinctChildrenDeepLazy(offsets, parent, tag))
	}
}

// assemble builds the final dataset with back-references in place.
func (st *buildState) assemble(forceLimit int) *Dataset {
	ds := &Dataset{
		schema:      st.schema,
		logger:      st.opts.logger,
		collections: make(map[string]*Collection),
		forceLimit:  forceLimit,
	}

	names := make(map[string]bool)
	for coll := range st.members {
		names[coll] = true
	}
	for name := range st.bare {
		names[name] = true
	}
	for coll := range st.counters {
		names[coll] = true
	}
	for coll := range st.derived {
		names[coll] = true
	}

	ds.order = slices.Sorted(maps.Keys(names))

	for _, name := range ds.order {
		fallback := KindPlain
		if st.bare[name] && len(st.members[name]) == 0 {
			fallback = KindSingleton
		}

		c := &Collection{
			name:   name,
			kind:   st.schema.kindOf(name, fallback),
			root:   ds,
			fields: make(map[string]any),
		}

		if counts, ok := st.countsCell(name); ok {
			c.counts = counts
			if offsets, ok := st.offsetsCell(name); ok {
				c.offsets = offsets
			}
		}

		if st.bare[name] {
			if cell, ok := st.fields[name].asCell(); ok {
				c.addField(name, cell)
			}
		}
		for _, member := range st.members[name] {
			if cell, ok := st.fields[member].asCell(); ok {
				c.addField(localNameOf(member), cell)
			}
		}
		for _, derivedName := range st.order[name] {
			c.addField(derivedName, st.derived[name][derivedName])
		}

		ds.collections[name] = c
	}

	st.resolveEventCount(ds)

	return ds
}

// resolveEventCount determines the chunk's event count from event-level
// buffers whose length is known without materialization.
func (st *buildState) resolveEventCount(ds *Dataset) {
	for _, id := range st.schema.EventIDs {
		if field, ok := st.fields[id]; ok {
			if n, known := field.length(); known {
				ds.events, ds.eventsKnown = n, true
				return
			}
		}
	}
	for _, coll := range slices.Sorted(maps.Keys(st.counters)) {
		if n, known := st.fields[st.counters[coll]].length(); known {
			ds.events, ds.eventsKnown = n, true
			return
		}
	}
}
