// Package region implements the normalized transcript data model (§3 of the
// specification) and the GFF3 transform that produces it, following the
// transcript/exon shape of this codebase's VEP transcript cache while
// carrying the CDS phase chain the original Rust model requires.
package region

import (
	"fmt"
)

// Interval is a half-open [Start, Stop) range on a chromosome, 0-based.
type Interval struct {
	Start int64
	Stop  int64
}

// NewInterval validates and constructs an Interval. Start must be strictly
// less than Stop.
func NewInterval(start, stop int64) (Interval, error) {
	if start >= stop {
		return Interval{}, fmt.Errorf("invalid interval [%d, %d): start must be < stop", start, stop)
	}
	return Interval{Start: start, Stop: stop}, nil
}

// Len returns the number of positions covered by the interval.
func (iv Interval) Len() int64 {
	return iv.Stop - iv.Start
}

// Contains reports whether pos lies within [Start, Stop).
func (iv Interval) Contains(pos int64) bool {
	return pos >= iv.Start && pos < iv.Stop
}

// String renders the interval in the on-disk "start-stop" form used by the
// genomic-regions TSV.
func (iv Interval) String() string {
	return fmt.Sprintf("%d-%d", iv.Start, iv.Stop)
}

// Phase is the number of bases that must be removed from the 5' end of a CDS
// segment to reach the first complete codon.
type Phase uint8

const (
	PhaseZero Phase = iota
	PhaseOne
	PhaseTwo
)

// ParsePhase parses a single GFF3 phase character ('0', '1', or '2').
func ParsePhase(c byte) (Phase, error) {
	switch c {
	case '0':
		return PhaseZero, nil
	case '1':
		return PhaseOne, nil
	case '2':
		return PhaseTwo, nil
	default:
		return 0, fmt.Errorf("invalid CDS phase %q", c)
	}
}

// Byte renders the phase back to its GFF3 single-character form.
func (p Phase) Byte() byte {
	return '0' + byte(p)
}

// Strand is the orientation a transcript is transcribed on.
type Strand uint8

const (
	Plus Strand = iota
	Minus
)

// ParseStrand parses a GFF3 strand character ('+' or '-').
func ParseStrand(c byte) (Strand, error) {
	switch c {
	case '+':
		return Plus, nil
	case '-':
		return Minus, nil
	default:
		return 0, fmt.Errorf("invalid strand %q", c)
	}
}

// Byte renders the strand back to its GFF3 single-character form.
func (s Strand) Byte() byte {
	if s == Minus {
		return '-'
	}
	return '+'
}

// String implements fmt.Stringer.
func (s Strand) String() string {
	return string(s.Byte())
}

// CDS is a coding-sequence segment with the phase needed to resume
// translation at its first base.
type CDS struct {
	Range Interval
	Phase Phase
}

// SeqAnnotation is the normalized, per-transcript record the Transform stage
// produces and every downstream stage consumes.
type SeqAnnotation struct {
	Name    string
	Chr     string
	Range   Interval
	Strand  Strand
	Exons   []Interval
	CDSs    []CDS
}

// NewSeqAnnotation constructs a SeqAnnotation. It does not itself validate
// the invariants described in §3 (exon containment, CDS-inside-exon, phase
// chain consistency), and neither the GFF3 transform nor the genomic-regions
// reader checks them: an annotation that breaks them is passed on as read.
// ValidatePhaseChain checks the phase chain on request.
func NewSeqAnnotation(name, chr string, rng Interval, strand Strand, exons []Interval, cdss []CDS) SeqAnnotation {
	return SeqAnnotation{
		Name:   name,
		Chr:    chr,
		Range:  rng,
		Strand: strand,
		Exons:  exons,
		CDSs:   cdss,
	}
}

// IsForwardStrand reports whether the transcript is on the plus strand.
func (a *SeqAnnotation) IsForwardStrand() bool {
	return a.Strand == Plus
}

// FindCDS returns the CDS segment containing pos, if any.
func (a *SeqAnnotation) FindCDS(pos int64) (CDS, bool) {
	for _, c := range a.CDSs {
		if c.Range.Contains(pos) {
			return c, true
		}
	}
	return CDS{}, false
}

// FindExon returns the exon containing pos, if any.
func (a *SeqAnnotation) FindExon(pos int64) (Interval, bool) {
	for _, e := range a.Exons {
		if e.Contains(pos) {
			return e, true
		}
	}
	return Interval{}, false
}

// FindIntron returns the intron containing pos, if any. Introns are the
// gaps between consecutive exons; a position inside the overall range that
// is in no exon must fall in exactly one such gap.
func (a *SeqAnnotation) FindIntron(pos int64) (Interval, bool) {
	for i := 0; i+1 < len(a.Exons); i++ {
		gap := Interval{Start: a.Exons[i].Stop, Stop: a.Exons[i+1].Start}
		if gap.Contains(pos) {
			return gap, true
		}
	}
	return Interval{}, false
}

// ValidatePhaseChain checks that CDS[i+1]'s phase equals
// (phase[i] + length[i]) mod 3 when CDS segments are walked in transcription
// order (5' to 3' on the transcribed strand), per §3.
func (a *SeqAnnotation) ValidatePhaseChain() error {
	if len(a.CDSs) < 2 {
		return nil
	}
	ordered := make([]CDS, len(a.CDSs))
	copy(ordered, a.CDSs)
	if !a.IsForwardStrand() {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	for i := 0; i+1 < len(ordered); i++ {
		want := (int(ordered[i].Phase) + int(ordered[i].Range.Len())) % 3
		if int(ordered[i+1].Phase) != want {
			return fmt.Errorf(
				"phase chain inconsistency in %s: CDS %d has phase %d, expected %d",
				a.Name, i+1, ordered[i+1].Phase, want,
			)
		}
	}
	return nil
}
