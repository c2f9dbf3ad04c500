package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvraster/internal/config"
)

func smallConfig(t *testing.T, over *config.RunConfig) *config.RunConfig {
	t.Helper()
	dir := t.TempDir()
	base := config.Defaults()
	base.ExtentSize = ptr(200.0)
	base.CellSize = ptr(10.0)
	base.Samples = ptr(60)
	base.Workers = ptr(2)
	base.OutputDir = &dir
	base.Render = ptr(false)
	return over.Merge(base)
}

func ptr[T any](v T) *T { return &v }

func TestRun_WritesSummary(t *testing.T) {
	cfg := smallConfig(t, &config.RunConfig{})
	res, err := run(context.Background(), cfg)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Outputs))
	for _, o := range res.Outputs {
		names = append(names, o.Name)
		assert.Equal(t, 20, o.Width)
		assert.Equal(t, 20, o.Height)
	}
	assert.Equal(t, []string{
		"dem", "slope", "aspect", "hillshade", "curvature", "roughness", "tpi", "tri", "flowdir", "flowacc",
		"idw", "distance", "cost", "density",
	}, names)
	assert.Equal(t, 60, res.Samples)
	require.NotNil(t, res.RMSE)

	data, err := os.ReadFile(filepath.Join(res.Dir, "summary.json"))
	require.NoError(t, err)
	var back Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, res.RunID, back.RunID)
	assert.Len(t, back.Outputs, len(res.Outputs))
}

func TestRun_Interpolators(t *testing.T) {
	for _, name := range []string{"idw", "tps", "tin"} {
		t.Run(name, func(t *testing.T) {
			cfg := smallConfig(t, &config.RunConfig{
				Interpolator: ptr(name),
				Derivatives:  []string{"slope"},
			})
			res, err := run(context.Background(), cfg)
			require.NoError(t, err)
			require.Len(t, res.Outputs, 6)
			assert.Equal(t, name, res.Outputs[2].Name)
			assert.Positive(t, res.Outputs[2].Count)
		})
	}
}

func TestRun_RendersImages(t *testing.T) {
	cfg := smallConfig(t, &config.RunConfig{
		Render:      ptr(true),
		Derivatives: []string{"hillshade"},
	})
	res, err := run(context.Background(), cfg)
	require.NoError(t, err)
	for _, o := range res.Outputs {
		require.NotEmpty(t, o.Image)
		_, err := os.Stat(filepath.Join(res.Dir, o.Image))
		assert.NoError(t, err, o.Image)
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := smallConfig(t, &config.RunConfig{Derivatives: []string{"wetness"}})
	_, err := run(context.Background(), cfg)
	assert.Error(t, err)

	cfg = smallConfig(t, &config.RunConfig{Kernel: ptr("box")})
	_, err = run(context.Background(), cfg)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = run(ctx, smallConfig(t, &config.RunConfig{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"slope", "tpi"}, splitList(" slope, ,tpi"))
	assert.Empty(t, splitList(""))
}
