package store

import (
	"testing"

	"github.com/jbethune/genovo/internal/compare"
	"github.com/jbethune/genovo/internal/mutation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteComparisonsAndQuery(t *testing.T) {
	s := openInMemory(t)

	comparisons := []compare.ComparedMutation{
		{Region: "gene1", MutationType: mutation.Synonymous, Observed: 3, Expected: 2.5, PValue: 0.01},
		{Region: "gene2", MutationType: mutation.Missense, Observed: 0, Expected: 0.1, PValue: 0.9},
	}
	require.NoError(t, s.WriteComparisons(comparisons))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM significant_mutations").Scan(&count))
	assert.Equal(t, 2, count)

	var pValue float64
	require.NoError(t, s.DB().QueryRow(
		"SELECT p_value FROM significant_mutations WHERE region=? AND mutation_type=?",
		"gene1", "synonymous",
	).Scan(&pValue))
	assert.InDelta(t, 0.01, pValue, 1e-12)
}

func TestClear(t *testing.T) {
	s := openInMemory(t)
	comparisons := []compare.ComparedMutation{
		{Region: "gene1", MutationType: mutation.Synonymous, Observed: 1, Expected: 1, PValue: 0.5},
	}
	require.NoError(t, s.WriteComparisons(comparisons))
	require.NoError(t, s.Clear())

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM significant_mutations").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestWriteComparisonsEmpty(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.WriteComparisons(nil))
}
