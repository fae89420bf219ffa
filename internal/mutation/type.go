// Package mutation defines the consequence taxonomy and the counting
// containers shared by every stage of the enrichment pipeline.
package mutation

import "fmt"

// Type is the closed set of consequence classes a point or indel mutation
// can be assigned to. The numeric value is the stable on-disk code used by
// the possible-mutations text format; it must never be renumbered.
type Type uint8

const (
	Unknown Type = iota
	Synonymous
	Missense
	Nonsense
	StartCodon
	StopLoss
	SpliceSite
	Intronic
	InFrameIndel
	FrameshiftIndel
)

// numTypes is the size of the closed enum, used to size fixed-shape arrays.
const numTypes = int(FrameshiftIndel) + 1

// orderedTypes is the canonical iteration order required by §3 and by the
// file formats in §6 (expected-mutations columns, sampled-mutations columns).
var orderedTypes = [numTypes]Type{
	Unknown, Synonymous, Missense, Nonsense, StartCodon,
	StopLoss, SpliceSite, Intronic, InFrameIndel, FrameshiftIndel,
}

// OrderedTypes returns the canonical MutationType enumeration order.
func OrderedTypes() []Type {
	out := make([]Type, numTypes)
	copy(out, orderedTypes[:])
	return out
}

var typeNames = [numTypes]string{
	"unknown", "synonymous", "missense", "nonsense", "start_codon",
	"stop_loss", "splice_site", "intronic", "inframe_indel", "frameshift_indel",
}

// String returns the stable display name used in classified-mutations and
// significant-mutations output.
func (t Type) String() string {
	if int(t) < numTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("mutation_type(%d)", uint8(t))
}

// ParseType parses the stable display string back into a Type.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown mutation type %q", s)
}

// Event is a single enumerated mutation possibility: a consequence class
// paired with the probability the enumerator computed for it.
type Event struct {
	Type        Type
	Probability float64
}

// NewEvent constructs an Event. It is a thin convenience constructor mirroring
// the original MutationEvent::new.
func NewEvent(t Type, probability float64) Event {
	return Event{Type: t, Probability: probability}
}
