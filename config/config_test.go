package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "manhattan", cfg.Heuristic)
	assert.Equal(t, 3, cfg.Dim)
	assert.Equal(t, 40, cfg.ScrambleSteps)
	assert.Equal(t, 30*time.Second, cfg.SolveTimeout)
	assert.Equal(t, uint64(0), cfg.MaxIterations)
	assert.False(t, cfg.Debug)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAQUIN_HEURISTIC", "misplaced")
	t.Setenv("TAQUIN_DIM", "4")
	t.Setenv("TAQUIN_MAX_ITERATIONS", "5000")
	t.Setenv("TAQUIN_SOLVE_TIMEOUT", "2m")
	t.Setenv("TAQUIN_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "misplaced", cfg.Heuristic)
	assert.Equal(t, 4, cfg.Dim)
	assert.Equal(t, uint64(5000), cfg.MaxIterations)
	assert.Equal(t, 2*time.Minute, cfg.SolveTimeout)
	assert.True(t, cfg.Debug)
}

func TestDefaultMatchesLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
