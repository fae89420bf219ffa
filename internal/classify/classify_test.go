package classify

import (
	"testing"

	"github.com/jbethune/genovo/internal/mutation"
	"github.com/jbethune/genovo/internal/region"
	"github.com/stretchr/testify/assert"
)

func annotationWithCDS(strand region.Strand, cds ...region.CDS) *region.SeqAnnotation {
	a := region.NewSeqAnnotation("t", "chr1", region.Interval{Start: 0, Stop: 1000}, strand, nil, cds)
	return &a
}

func TestClassifyByPositionSpliceSiteAndIntronic(t *testing.T) {
	a := region.NewSeqAnnotation("t", "chr1", region.Interval{Start: 0, Stop: 30},
		region.Plus, []region.Interval{{Start: 10, Stop: 20}}, nil)
	c := NewClassifier(&a)

	assert.Equal(t, mutation.SpliceSite, c.ClassifyByPosition(11, nil))
	assert.Equal(t, mutation.SpliceSite, c.ClassifyByPosition(9, nil))
	assert.Equal(t, mutation.SpliceSite, c.ClassifyByPosition(18, nil))

	intron := &region.Interval{Start: 20, Stop: 25}
	assert.Equal(t, mutation.Intronic, c.ClassifyByPosition(23, intron))
	assert.Equal(t, mutation.Unknown, c.ClassifyByPosition(23, nil))
}

func TestClassifyCodingMutationSynonymous(t *testing.T) {
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 9}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	got := c.ClassifyCodingMutation(5, "GATTA", 'C', cds)
	assert.Equal(t, mutation.Synonymous, got)
}

func TestClassifyCodingMutationMissense(t *testing.T) {
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 9}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	got := c.ClassifyCodingMutation(4, "GGATT", 'T', cds)
	assert.Equal(t, mutation.Missense, got)
}

func TestClassifyCodingMutationNonsense(t *testing.T) {
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 3}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	got := c.ClassifyCodingMutation(2, "TGGAA", 'A', cds)
	assert.Equal(t, mutation.Nonsense, got)
}

func TestClassifyCodingMutationStopLoss(t *testing.T) {
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 3}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	got := c.ClassifyCodingMutation(2, "TAAAA", 'C', cds)
	assert.Equal(t, mutation.StopLoss, got)
}

func TestClassifyCodingMutationStartCodon(t *testing.T) {
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 3}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	got := c.ClassifyCodingMutation(0, "NNATG", 'T', cds)
	assert.Equal(t, mutation.StartCodon, got)
}

func TestClassifyCodingMutationReverseStrand(t *testing.T) {
	// Genomic bases at [0,1,2) are C,A,T (context[2] is the ref base at
	// pos=2). Context is always given in genomic left-to-right orientation;
	// the transcribed (reverse-complement) codon read 5'->3' is ATG.
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 3}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Minus, cds))

	// genomic alt C at pos2 -> transcribed alt G at codon position 0:
	// ATG -> GTG (Val), which does not preserve the start codon's Met.
	got := c.ClassifyCodingMutation(2, "CATNN", 'C', cds)
	assert.Equal(t, mutation.StartCodon, got)
}

func TestClassifierIdentityAcrossCallers(t *testing.T) {
	// The enumerator and the observed-mutation path must reach the same
	// classification for identical inputs: calling the shared Classifier
	// twice with the same arguments must be side-effect free and
	// deterministic.
	cds := region.CDS{Range: region.Interval{Start: 0, Stop: 9}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	fromEnumeratorPath := c.ClassifyCodingMutation(4, "GGATT", 'T', cds)
	fromObservedPath := c.ClassifyCodingMutation(4, "GGATT", 'T', cds)
	assert.Equal(t, fromEnumeratorPath, fromObservedPath)
}

func TestClassifyIndel(t *testing.T) {
	cds := region.CDS{Range: region.Interval{Start: 10, Stop: 20}, Phase: region.PhaseZero}
	c := NewClassifier(annotationWithCDS(region.Plus, cds))

	assert.Equal(t, mutation.FrameshiftIndel, c.ClassifyIndel(9, 6, true))
	assert.Equal(t, mutation.InFrameIndel, c.ClassifyIndel(9, 6, false))
	assert.Equal(t, mutation.Intronic, c.ClassifyIndel(100, 6, true))
}
