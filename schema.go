package jaggedzip

import "fmt"

// Kind is the closed set of collection kinds. It replaces the original
// design's open mixin registry: behavior is dispatched on the kind value, not
// on runtime-attached methods.
type Kind int

const (
	// KindPlain is a generic table collection with no extra capabilities.
	KindPlain Kind = iota
	// KindSingleton is a collection backed by a single per-event buffer.
	KindSingleton
	// KindCandidate is a reconstructed-object collection that may carry
	// cross-references into other collections.
	KindCandidate
	// KindParticle is a self-referential decay-tree collection eligible for
	// genealogy derivations.
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindSingleton:
		return "singleton"
	case KindCandidate:
		return "candidate"
	case KindParticle:
		return "particle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// HasGenealogy reports whether collections of this kind are eligible for
// genealogy derivations (children, distinct parent, deep distinct children).
func (k Kind) HasGenealogy() bool {
	return k == KindParticle
}

// NestedIndexItem declares a doubly-jagged index derived from per-item counts:
// the target collection's flat content is partitioned by CountsField.
type NestedIndexItem struct {
	// CountsField is the full name of the per-item counts field, e.g.
	// "Jet_nConstituents".
	CountsField string
	// Target is the collection whose content range is partitioned.
	Target string
}

// GenealogySpec names the buffers a particle collection needs for genealogy
// derivations. Field names are local to the collection (no prefix).
type GenealogySpec struct {
	// ParentField is the local index of each item's parent, -1 for none.
	ParentField string
	// TagField is the discrete type label compared during same-tag walks.
	TagField string
}

// Schema is the explicit configuration for a Builder. It replaces the
// original design's process-wide registries: all naming conventions,
// cross-reference declarations, and kind assignments are passed at
// construction time.
type Schema struct {
	// Kinds assigns collection kinds by name. Unlisted collections default
	// to KindPlain (or KindSingleton when backed by a single bare buffer).
	Kinds map[string]Kind

	// CrossRefs maps local index fields to their target collections, e.g.
	// "Muon_partIdx" -> "Part". Each is converted to a chunk-global index
	// field with a "G" suffix.
	CrossRefs map[string]string

	// NestedItems groups K derived global index fields into one
	// doubly-jagged field of fixed inner size K, e.g.
	// "Jet_leptonIdxG" -> ["Jet_muonIdxG", "Jet_electronIdxG"].
	NestedItems map[string][]string

	// NestedIndexItems declares counts-derived doubly-jagged index fields.
	NestedIndexItems map[string]NestedIndexItem

	// Genealogy declares the parent/tag buffers of particle collections.
	Genealogy map[string]GenealogySpec

	// EventIDs lists per-event identifier fields that must be present.
	EventIDs []string

	// CountPrefix is the naming convention marking per-event count fields.
	// Default "n": collection X's counts live in field "nX".
	CountPrefix string
}

func (s Schema) withDefaults() Schema {
	if s.CountPrefix == "" {
		s.CountPrefix = "n"
	}
	return s
}

func (s Schema) kindOf(name string, fallback Kind) Kind {
	if k, ok := s.Kinds[name]; ok {
		return k
	}
	return fallback
}

// counterField returns the counts field name for a collection.
func (s Schema) counterField(collection string) string {
	return s.CountPrefix + collection
}
