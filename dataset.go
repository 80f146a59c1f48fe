package jaggedzip

import (
	"context"

	"github.com/hupe1980/jaggedzip/deferred"
	"github.com/hupe1980/jaggedzip/jagged"
)

// Dataset is the assembled hierarchical view over one chunk of events. It
// owns all collections; every collection carries an immutable reference back
// to its dataset, established at construction.
type Dataset struct {
	schema      Schema
	logger      *Logger
	collections map[string]*Collection
	order       []string
	events      int64
	eventsKnown bool
	forceLimit  int
}

// Collection returns a collection by name.
func (d *Dataset) Collection(name string) (*Collection, bool) {
	c, ok := d.collections[name]
	return c, ok
}

// Collections returns the collection names in deterministic order.
func (d *Dataset) Collections() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Events returns the number of events in the chunk, when it is known without
// materializing anything.
func (d *Dataset) Events() (int64, bool) {
	return d.events, d.eventsKnown
}

// ForceAll materializes every deferred field in the dataset. Errors are
// translated onto the root taxonomy (ErrInvalidInput, ErrOutOfBounds,
// ErrCorruptGraph).
func (d *Dataset) ForceAll(ctx context.Context) error {
	var forcers []deferred.Forcer
	for _, name := range d.order {
		c := d.collections[name]
		if c.offsets != nil {
			forcers = append(forcers, c.offsets)
		}
		for _, field := range c.order {
			if f, ok := c.fields[field].(deferred.Forcer); ok {
				forcers = append(forcers, f)
			}
		}
	}
	return translateError(deferred.ForceAll(ctx, d.forceLimit, forcers...))
}

// Collection is one named sub-collection of a dataset: an offsets cell
// partitioning its items per event (nil for event-level tables) plus a set of
// flat or derived field cells.
type Collection struct {
	name    string
	kind    Kind
	root    *Dataset
	counts  *deferred.Cell[[]int64]
	offsets *deferred.Cell[jagged.Offsets]
	fields  map[string]any
	order   []string
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Kind returns the collection kind.
func (c *Collection) Kind() Kind { return c.kind }

// Root returns the owning dataset.
func (c *Collection) Root() *Dataset { return c.root }

// HasGenealogy reports whether this collection carries genealogy derivations.
func (c *Collection) HasGenealogy() bool {
	_, declared := c.root.schema.Genealogy[c.name]
	return c.kind.HasGenealogy() && declared
}

// HasCrossReference reports whether the named field is a declared
// cross-reference into another collection.
func (c *Collection) HasCrossReference(field string) bool {
	_, ok := c.root.schema.CrossRefs[c.name+"_"+field]
	return ok
}

// CrossReferenceTarget returns the target collection of a cross-reference
// field.
func (c *Collection) CrossReferenceTarget(field string) (string, bool) {
	target, ok := c.root.schema.CrossRefs[c.name+"_"+field]
	return target, ok
}

// Counts returns the per-event counts cell, if the collection is jagged.
func (c *Collection) Counts() (*deferred.Cell[[]int64], bool) {
	return c.counts, c.counts != nil
}

// Offsets returns the per-event offsets cell, if the collection is jagged.
func (c *Collection) Offsets() (*deferred.Cell[jagged.Offsets], bool) {
	return c.offsets, c.offsets != nil
}

// Fields returns the field names in deterministic order.
func (c *Collection) Fields() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Field returns the type-erased forcer view of a field, for bulk forcing.
func (c *Collection) Field(name string) (deferred.Forcer, bool) {
	f, ok := c.fields[name].(deferred.Forcer)
	return f, ok
}

// Int64Field returns a flat int64 field cell.
func (c *Collection) Int64Field(name string) (*deferred.Cell[[]int64], bool) {
	f, ok := c.fields[name].(*deferred.Cell[[]int64])
	return f, ok
}

// Int32Field returns a flat int32 field cell.
func (c *Collection) Int32Field(name string) (*deferred.Cell[[]int32], bool) {
	f, ok := c.fields[name].(*deferred.Cell[[]int32])
	return f, ok
}

// Float64Field returns a flat float64 field cell.
func (c *Collection) Float64Field(name string) (*deferred.Cell[[]float64], bool) {
	f, ok := c.fields[name].(*deferred.Cell[[]float64])
	return f, ok
}

// Float32Field returns a flat float32 field cell.
func (c *Collection) Float32Field(name string) (*deferred.Cell[[]float32], bool) {
	f, ok := c.fields[name].(*deferred.Cell[[]float32])
	return f, ok
}

// BoolField returns a flat bool field cell.
func (c *Collection) BoolField(name string) (*deferred.Cell[[]bool], bool) {
	f, ok := c.fields[name].(*deferred.Cell[[]bool])
	return f, ok
}

// JaggedField returns a derived jagged field cell, e.g. a resolved global
// cross-reference index or a children list.
func (c *Collection) JaggedField(name string) (*deferred.Cell[jagged.Ints], bool) {
	f, ok := c.fields[name].(*deferred.Cell[jagged.Ints])
	return f, ok
}

// DoublyField returns a derived doubly-jagged field cell, e.g. a nested
// index.
func (c *Collection) DoublyField(name string) (*deferred.Cell[jagged.Doubly], bool) {
	f, ok := c.fields[name].(*deferred.Cell[jagged.Doubly])
	return f, ok
}

func (c *Collection) addField(name string, cell any) {
	if _, ok := c.fields[name]; !ok {
		c.order = append(c.order, name)
	}
	c.fields[name] = cell
}
