package sample

import (
	"path/filepath"
	"testing"

	"github.com/jbethune/genovo/internal/enumerate"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMutationsProducesBoundedCounts(t *testing.T) {
	seed := int64(42)
	pm := enumerate.PossibleMutations{
		"gene1": {
			mutation.NewEvent(mutation.Synonymous, 0.9),
			mutation.NewEvent(mutation.Synonymous, 0.1),
			mutation.NewEvent(mutation.Missense, 0.5),
		},
	}
	got := SampleMutations(pm, Options{NumberOfSamples: 200, Seed: &seed})
	require.Contains(t, got, "gene1")
	dist := got["gene1"]
	require.Contains(t, dist, mutation.Synonymous)
	require.Contains(t, dist, mutation.Missense)

	total := uint64(0)
	for _, v := range dist[mutation.Synonymous].Values() {
		total += v
	}
	assert.Equal(t, uint64(200), total)
}

func TestSampleMutationsDropsUnknown(t *testing.T) {
	pm := enumerate.PossibleMutations{
		"gene1": {
			mutation.NewEvent(mutation.Unknown, 0.5),
			mutation.NewEvent(mutation.Synonymous, 0.5),
		},
	}
	got := SampleMutations(pm, Options{NumberOfSamples: 10, DropUnknownMutationType: true})
	_, hasUnknown := got["gene1"][mutation.Unknown]
	assert.False(t, hasUnknown)
	_, hasSyn := got["gene1"][mutation.Synonymous]
	assert.True(t, hasSyn)
}

func TestSampleMutationsDeterministicWithSeed(t *testing.T) {
	pm := enumerate.PossibleMutations{
		"gene1": {
			mutation.NewEvent(mutation.Synonymous, 0.9),
			mutation.NewEvent(mutation.Synonymous, 0.1),
		},
	}
	seed := int64(7)
	a := SampleMutations(pm, Options{NumberOfSamples: 50, Seed: &seed})
	b := SampleMutations(pm, Options{NumberOfSamples: 50, Seed: &seed})
	assert.Equal(t, a["gene1"][mutation.Synonymous].Values(), b["gene1"][mutation.Synonymous].Values())
}

func TestSampledMutationsTSVRoundTrip(t *testing.T) {
	sm := make(SampledMutations)
	path := filepath.Join(t.TempDir(), "sampled.tsv")
	require.NoError(t, WriteToFile(path, sm))
	got, err := ReadFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, got)

	c1 := mutation.NewDefaultCounter()
	c1.Inc(0)
	c1.Inc(1)
	c1.Inc(2)
	c1.Inc(2)
	c1.Inc(3)
	sm["foo"] = map[mutation.Type]*mutation.DefaultCounter{
		mutation.Unknown:    mutation.NewDefaultCounter(),
		mutation.Synonymous: c1,
	}

	require.NoError(t, WriteToFile(path, sm))
	got, err = ReadFromFile(path)
	require.NoError(t, err)
	require.Contains(t, got, "foo")
	assert.Equal(t, c1.Values(), got["foo"][mutation.Synonymous].Values())
}
