package observed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbethune/genovo/internal/enumerate"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/jbethune/genovo/internal/papa"
	"github.com/jbethune/genovo/internal/region"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenome struct {
	seqs map[string]string
}

func (g fakeGenome) Sequence(chr string, start, stop int64) (string, error) {
	s, ok := g.seqs[chr]
	if !ok || start < 0 || stop > int64(len(s)) {
		return "", errors.New("out of bounds")
	}
	return s[start:stop], nil
}

func oneExonTranscript() (region.SeqAnnotation, fakeGenome) {
	seq := "NNATGGATTAANNN"
	a := region.NewSeqAnnotation("t1", "chr1", region.Interval{Start: 2, Stop: 11}, region.Plus,
		[]region.Interval{{Start: 2, Stop: 11}},
		[]region.CDS{{Range: region.Interval{Start: 2, Stop: 11}, Phase: region.PhaseZero}})
	return a, fakeGenome{seqs: map[string]string{"chr1": seq}}
}

func TestReadMutationsFromFileSkipsCommentsAndIndels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observed.tsv")
	content := "# comment\nchr1 6 G C\nchr1 9 AG C extra-column\nchr2\t42\tA\tT\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := ReadMutationsFromFile(path, DefaultPositionAdjustment)
	require.NoError(t, err)
	require.Len(t, got, 2) // the AG->C record is skipped (multi-base ref)

	assert.Equal(t, PointMutation{Chromosome: "chr1", Position: 5, From: 'G', To: 'C'}, got[0])
	assert.Equal(t, PointMutation{Chromosome: "chr2", Position: 41, From: 'A', To: 'T'}, got[1])
}

func TestReadMutationsFromFileRejectsShortRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observed.tsv")
	require.NoError(t, os.WriteFile(path, []byte("chr1 6 G\n"), 0o644))

	_, err := ReadMutationsFromFile(path, DefaultPositionAdjustment)
	assert.Error(t, err)
}

func TestClassifyMutationsMissense(t *testing.T) {
	a, g := oneExonTranscript()
	mutations := []PointMutation{{Chromosome: "chr1", Position: 5, From: 'G', To: 'C'}}

	got, err := ClassifyMutations(mutations, []region.SeqAnnotation{a}, g, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mutation.Missense, got[0].MutationType)
	assert.Equal(t, "t1", got[0].RegionName)
	assert.Equal(t, "G->C", got[0].Change())
}

func TestClassifyMutationsRejectsRefMismatch(t *testing.T) {
	a, g := oneExonTranscript()
	mutations := []PointMutation{{Chromosome: "chr1", Position: 5, From: 'A', To: 'C'}}

	_, err := ClassifyMutations(mutations, []region.SeqAnnotation{a}, g, "")
	assert.Error(t, err)
}

func TestClassifyMutationsFilterForID(t *testing.T) {
	a, g := oneExonTranscript()
	mutations := []PointMutation{{Chromosome: "chr1", Position: 5, From: 'G', To: 'C'}}

	got, err := ClassifyMutations(mutations, []region.SeqAnnotation{a}, g, "other")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestClassifierIdentityBetweenEnumeratorAndObservedPaths is the
// cross-package half of the classifier-identity invariant (§4.2/§8): for the
// same (annotation, position, alternate base), the Enumerator's
// classification (driven over every possible alternate) and the observed
// path's classification (driven over one concrete observed mutation) must
// agree.
func TestClassifierIdentityBetweenEnumeratorAndObservedPaths(t *testing.T) {
	a, g := oneExonTranscript()

	kmers := []string{
		"NNATG", "NATGG", "ATGGA", "TGGAT", "GGATT",
		"GATTA", "ATTAA", "TTAAN", "TAANN",
	}
	probPath := filepath.Join(t.TempDir(), "probs.tsv")
	f, err := os.Create(probPath)
	require.NoError(t, err)
	for _, kmer := range kmers {
		_, err := fmt.Fprintf(f, "%s\t%g\t%g\t%g\t%g\n", kmer, 0.01, 0.01, 0.01, 0.01)
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())
	oracle, err := papa.LoadPointOracle(probPath, 0)
	require.NoError(t, err)

	pm, warnings := enumerate.EnumeratePossibleMutations([]region.SeqAnnotation{a}, g, oracle, nil, enumerate.Options{})
	require.Empty(t, warnings)

	observedMutations := []PointMutation{{Chromosome: "chr1", Position: 5, From: 'G', To: 'C'}}
	classified, err := ClassifyMutations(observedMutations, []region.SeqAnnotation{a}, g, "")
	require.NoError(t, err)
	require.Len(t, classified, 1)

	// Position 5 is the 4th base in range [2,11) (index 3), each position
	// contributing 3 events in papa.Bases() order (A, C, G, T) with the
	// reference base (G) skipped: alternates A, C, T land at indices 9, 10,
	// 11. The C-alternate event is the one directly comparable to the
	// observed G->C mutation classified above.
	events := pm["t1"]
	require.Len(t, events, 27)
	altCEvent := events[3*3+1]
	assert.Equal(t, classified[0].MutationType, altCEvent.Type)
}
