package region

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionFileRoundTrip(t *testing.T) {
	annos := []SeqAnnotation{
		NewSeqAnnotation("transcript1", "chr1", Interval{Start: 1, Stop: 100}, Plus,
			[]Interval{{Start: 10, Stop: 20}, {Start: 30, Stop: 40}},
			[]CDS{{Range: Interval{Start: 15, Stop: 20}, Phase: PhaseTwo}, {Range: Interval{Start: 32, Stop: 40}, Phase: PhaseOne}}),
		NewSeqAnnotation("transcript2", "chr2", Interval{Start: 1, Stop: 100}, Plus,
			[]Interval{{Start: 10, Stop: 20}, {Start: 30, Stop: 40}},
			[]CDS{{Range: Interval{Start: 15, Stop: 20}, Phase: PhaseTwo}, {Range: Interval{Start: 32, Stop: 40}, Phase: PhaseOne}}),
	}

	path := filepath.Join(t.TempDir(), "regions.tsv")
	require.NoError(t, WriteSequenceAnnotationsToFile(path, annos))

	got, err := ReadSequenceAnnotationsFromFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, annos, got)
}

func TestRegionFileFilterForID(t *testing.T) {
	annos := []SeqAnnotation{
		NewSeqAnnotation("t1", "chr1", Interval{Start: 1, Stop: 100}, Plus, nil, nil),
		NewSeqAnnotation("t2", "chr2", Interval{Start: 1, Stop: 100}, Minus, nil, nil),
	}
	path := filepath.Join(t.TempDir(), "regions.tsv")
	require.NoError(t, WriteSequenceAnnotationsToFile(path, annos))

	got, err := ReadSequenceAnnotationsFromFile(path, "t2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Name)
	assert.Equal(t, Minus, got[0].Strand)
}

func TestIndexFindOverlaps(t *testing.T) {
	annos := []SeqAnnotation{
		NewSeqAnnotation("t1", "chr1", Interval{Start: 10, Stop: 100}, Plus, nil, nil),
		NewSeqAnnotation("t2", "chr1", Interval{Start: 50, Stop: 200}, Plus, nil, nil),
		NewSeqAnnotation("t3", "chr2", Interval{Start: 0, Stop: 1000}, Plus, nil, nil),
	}
	idx := BuildIndex(annos)

	hits := idx.FindOverlaps("chr1", 75)
	var names []string
	for _, a := range hits {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"t1", "t2"}, names)

	assert.Empty(t, idx.FindOverlaps("chr1", 5))
	assert.Empty(t, idx.FindOverlaps("chr3", 5))
}
