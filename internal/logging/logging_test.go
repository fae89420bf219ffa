package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineLogger(t *testing.T) {
	logger, err := NewPipelineLogger(true)
	require.NoError(t, err)
	require.NotNil(t, logger)

	prod, err := NewPipelineLogger(false)
	require.NoError(t, err)
	require.NotNil(t, prod)
}

func TestStageLoggerDoesNotPanic(t *testing.T) {
	logger, err := NewPipelineLogger(true)
	require.NoError(t, err)
	staged := StageLogger(logger, "enumerate")
	assert.NotPanics(t, func() { staged.Infow("enumerating region", "region", "gene1") })
}

func TestRegionWarningDoesNotPanic(t *testing.T) {
	logger, err := NewPipelineLogger(true)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		RegionWarning(logger, "gene1", "missense", errors.New("boom"))
		RegionWarning(logger, "gene2", "", errors.New("boom2"))
	})
}

func TestJoinWarningsCombinesNonNil(t *testing.T) {
	err := JoinWarnings(nil, errors.New("a"), nil, errors.New("b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")

	assert.Nil(t, JoinWarnings(nil, nil))
}
