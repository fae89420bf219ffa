package expect

import (
	"path/filepath"
	"testing"

	"github.com/jbethune/genovo/internal/enumerate"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSumsPerClass(t *testing.T) {
	pm := enumerate.PossibleMutations{
		"gene1": {
			mutation.NewEvent(mutation.Synonymous, 0.1),
			mutation.NewEvent(mutation.Synonymous, 0.2),
			mutation.NewEvent(mutation.Missense, 0.3),
		},
	}
	got := Compute(pm, "")
	require.Contains(t, got, "gene1")
	c := got["gene1"]
	assert.InDelta(t, 0.3, c.Get(mutation.Synonymous), 1e-12)
	assert.InDelta(t, 0.3, c.Get(mutation.Missense), 1e-12)
	assert.Equal(t, float64(0), c.Get(mutation.Nonsense))
}

func TestComputeFilterForID(t *testing.T) {
	pm := enumerate.PossibleMutations{
		"gene1": {mutation.NewEvent(mutation.Synonymous, 1.0)},
		"gene2": {mutation.NewEvent(mutation.Synonymous, 2.0)},
	}
	got := Compute(pm, "gene2")
	assert.NotContains(t, got, "gene1")
	assert.Contains(t, got, "gene2")
}

func TestComputeHighPrecisionSum(t *testing.T) {
	// 10^5 terms of order 1e-8 should sum close to 1e-3 without losing
	// precision to naive float64 accumulation order effects.
	events := make([]mutation.Event, 0, 100000)
	for i := 0; i < 100000; i++ {
		events = append(events, mutation.NewEvent(mutation.Synonymous, 1e-8))
	}
	pm := enumerate.PossibleMutations{"gene1": events}
	got := Compute(pm, "")
	assert.InDelta(t, 1e-3, got["gene1"].Get(mutation.Synonymous), 1e-12)
}

func TestExpectedMutationsTSVRoundTrip(t *testing.T) {
	em := make(ExpectedMutations)
	path := filepath.Join(t.TempDir(), "expected.tsv")
	require.NoError(t, WriteToFile(path, em))
	got, err := ReadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, got)

	var c1 mutation.ExpectedMutationCounts
	c1.Set(mutation.Unknown, 1.2)
	c1.Set(mutation.Synonymous, 2.3)
	c1.Set(mutation.Missense, 3.4)
	em["foo"] = c1

	require.NoError(t, WriteToFile(path, em))
	got, err = ReadFromFile(path)
	require.NoError(t, err)
	require.Contains(t, got, "foo")
	assert.Equal(t, c1, got["foo"])

	var c2 mutation.ExpectedMutationCounts
	c2.Set(mutation.FrameshiftIndel, 9.9)
	em["bar"] = c2
	require.NoError(t, WriteToFile(path, em))
	got, err = ReadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, c1, got["foo"])
	assert.Equal(t, c2, got["bar"])
}
