// Package classify holds the single consequence-classification core shared
// by the Enumerator and the observed-mutation path, satisfying the
// classifier-identity invariant of §4.2/§8: one function, two callers,
// deterministic output. Grounded on this codebase's
// internal/annotate/consequence.go (splice proximity, codon reconstruction,
// start/stop/synonymous/missense decision tree) and codon.go (codon table,
// complement, mutate-codon), re-targeted from VEP's SO-term strings to the
// closed mutation.Type enum.
package classify

import (
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/jbethune/genovo/internal/region"
)

// spliceWindow is the number of bases on either side of an exon/intron
// boundary that count as a splice site, per §4.2.
const spliceWindow = 2

// Classifier evaluates consequence classes for positions within a single
// SeqAnnotation.
type Classifier struct {
	annotation *region.SeqAnnotation
	ordered    []region.CDS // CDS segments in transcription order
}

// NewClassifier builds a Classifier bound to one annotation.
func NewClassifier(a *region.SeqAnnotation) *Classifier {
	ordered := make([]region.CDS, len(a.CDSs))
	copy(ordered, a.CDSs)
	if !a.IsForwardStrand() {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	return &Classifier{annotation: a, ordered: ordered}
}

// ClassifyByPosition implements the first stage of §4.2: splice-site
// proximity, then intronic overlap. It looks only at positions, not at
// sequence; intron, if non-nil, is the intron containing pos. Returns
// mutation.Unknown when neither applies, signaling the caller to attempt
// coding classification via ClassifyCodingMutation.
func (c *Classifier) ClassifyByPosition(pos int64, intron *region.Interval) mutation.Type {
	if c.isSpliceSite(pos) {
		return mutation.SpliceSite
	}
	if intron != nil {
		return mutation.Intronic
	}
	return mutation.Unknown
}

// isSpliceSite reports whether pos is within spliceWindow bases of any
// exon/intron boundary, on either side of the boundary.
func (c *Classifier) isSpliceSite(pos int64) bool {
	for _, e := range c.annotation.Exons {
		if abs64(pos-e.Start) <= spliceWindow || abs64(pos-e.Stop) <= spliceWindow {
			return true
		}
	}
	return false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ClassifyCodingMutation implements the second stage of §4.2: reconstruct
// the codon containing pos from the CDS phase and the ±2bp sequence
// context, translate reference and alternate, and classify. cds must be the
// CDS segment returned by SeqAnnotation.FindCDS(pos). alt is the genomic
// alternate base (not strand-adjusted).
//
// Minus-strand transcripts reverse-complement both the context and the
// alternate base before codon evaluation, per §4.2.
//
// If pos falls within the bases a CDS segment's phase says belong to the
// previous segment's final codon, the codon cannot be reconstructed from
// local context alone (it spans an intron); this is a known limitation of
// the local-context model and is resolved conservatively to Missense.
func (c *Classifier) ClassifyCodingMutation(pos int64, context string, alt byte, cds region.CDS) mutation.Type {
	reverse := !c.annotation.IsForwardStrand()

	var basesIntoSegment int64
	if reverse {
		basesIntoSegment = (cds.Range.Stop - 1) - pos
	} else {
		basesIntoSegment = pos - cds.Range.Start
	}

	completeOffset := basesIntoSegment - int64(cds.Phase)
	if completeOffset < 0 {
		return mutation.Missense
	}
	positionInCodon := int(completeOffset % 3)
	isFirstCodonOfChain := c.isFirstCDS(cds) && completeOffset/3 == 0

	codon := buildCodon(context, positionInCodon, reverse)
	transcribedAlt := alt
	if reverse {
		transcribedAlt = Complement(alt)
	}
	altCodon := MutateCodon(codon, positionInCodon, transcribedAlt)

	refAA := TranslateCodon(codon)
	altAA := TranslateCodon(altCodon)

	switch {
	case refAA == altAA:
		return mutation.Synonymous
	case altAA == '*' && refAA != '*':
		return mutation.Nonsense
	case refAA == '*' && altAA != '*':
		return mutation.StopLoss
	case isFirstCodonOfChain && altAA != 'M':
		return mutation.StartCodon
	default:
		return mutation.Missense
	}
}

func (c *Classifier) isFirstCDS(cds region.CDS) bool {
	return len(c.ordered) > 0 && c.ordered[0].Range == cds.Range
}

// buildCodon extracts the 3-base codon containing the context's center
// position, given its offset within the codon (0, 1, or 2) and strand.
// context must be 5 bases: [pos-2, pos-1, pos, pos+1, pos+2].
func buildCodon(context string, positionInCodon int, reverse bool) string {
	out := make([]byte, 3)
	if !reverse {
		start := 2 - positionInCodon
		copy(out, context[start:start+3])
		return string(out)
	}
	for i := 0; i < 3; i++ {
		idx := 2 + positionInCodon - i
		out[i] = Complement(context[idx])
	}
	return string(out)
}

// ClassifyIndel implements the indel half of §4.2: if the affected span
// (past the shared anchor base at pos) overlaps any CDS, classify by
// isFrameshift; otherwise Intronic.
func (c *Classifier) ClassifyIndel(pos int64, spanLength int64, isFrameshift bool) mutation.Type {
	spanStart := pos + 1
	spanStop := spanStart + spanLength
	if spanLength <= 0 {
		spanStop = spanStart + 1
	}
	for _, cds := range c.annotation.CDSs {
		if overlaps(cds.Range, spanStart, spanStop) {
			if isFrameshift {
				return mutation.FrameshiftIndel
			}
			return mutation.InFrameIndel
		}
	}
	return mutation.Intronic
}

func overlaps(iv region.Interval, start, stop int64) bool {
	return start < iv.Stop && stop > iv.Start
}
