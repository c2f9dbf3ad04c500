// Package config loads the JSON run configuration of the lvraster CLI.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvraster/density"
	"github.com/katalvlaran/lvraster/surface"
)

// RunConfig describes one CLI pipeline run. Every field is optional: a nil
// field falls back to the value in Defaults, so partial files are safe.
type RunConfig struct {
	// Synthetic surface
	ExtentSize *float64 `json:"extent_size,omitempty"` // world units per side
	CellSize   *float64 `json:"cell_size,omitempty"`
	CRS        *string  `json:"crs,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
	Samples    *int     `json:"samples,omitempty"`
	Noise      *float64 `json:"noise,omitempty"`

	// Interpolation
	Interpolator      *string  `json:"interpolator,omitempty"` // idw, tps or tin
	IDWPower          *float64 `json:"idw_power,omitempty"`
	IDWNeighbors      *int     `json:"idw_neighbors,omitempty"`
	IDWMaxDistance    *float64 `json:"idw_max_distance,omitempty"`
	IDWCapPolicy      *string  `json:"idw_cap_policy,omitempty"` // count or distance
	TPSRegularization *float64 `json:"tps_regularization,omitempty"`
	TPSMaxSamples     *int     `json:"tps_max_samples,omitempty"`

	// Surface derivatives
	Derivatives []string `json:"derivatives,omitempty"`
	ZFactor     *float64 `json:"z_factor,omitempty"`
	Azimuth     *float64 `json:"azimuth,omitempty"`
	Altitude    *float64 `json:"altitude,omitempty"`

	// Distance and density
	MaxDistance  *float64 `json:"max_distance,omitempty"` // 0 means unbounded
	Kernel       *string  `json:"kernel,omitempty"`
	KernelRadius *int     `json:"kernel_radius,omitempty"` // cells

	// Execution and output
	Workers   *int    `json:"workers,omitempty"`
	BlockSize *int    `json:"block_size,omitempty"`
	OutputDir *string `json:"output_dir,omitempty"`
	Render    *bool   `json:"render,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }

// Defaults returns a RunConfig with every field set.
func Defaults() *RunConfig {
	return &RunConfig{
		ExtentSize:        ptrFloat64(1000),
		CellSize:          ptrFloat64(10),
		CRS:               ptrString(""),
		Seed:              ptrInt64(1),
		Samples:           ptrInt(400),
		Noise:             ptrFloat64(0),
		Interpolator:      ptrString("idw"),
		IDWPower:          ptrFloat64(2),
		IDWNeighbors:      ptrInt(12),
		IDWMaxDistance:    ptrFloat64(0),
		IDWCapPolicy:      ptrString("count"),
		TPSRegularization: ptrFloat64(0),
		TPSMaxSamples:     ptrInt(500),
		Derivatives:       []string{"slope", "aspect", "hillshade", "curvature", "roughness", "tpi", "tri", "flowdir", "flowacc"},
		ZFactor:           ptrFloat64(1),
		Azimuth:           ptrFloat64(315),
		Altitude:          ptrFloat64(45),
		MaxDistance:       ptrFloat64(0),
		Kernel:            ptrString("quartic"),
		KernelRadius:      ptrInt(5),
		Workers:           ptrInt(0),
		BlockSize:         ptrInt(256),
		OutputDir:         ptrString("out"),
		Render:            ptrBool(true),
	}
}

// Load reads a RunConfig from a JSON file. The file must have a .json
// extension and be at most 1MB. Fields omitted from the file stay nil; use
// Merge to fill them from Defaults.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Merge returns a copy of c with every nil field taken from base.
func (c *RunConfig) Merge(base *RunConfig) *RunConfig {
	out := *base
	pick(&out.ExtentSize, c.ExtentSize)
	pick(&out.CellSize, c.CellSize)
	pick(&out.CRS, c.CRS)
	pick(&out.Seed, c.Seed)
	pick(&out.Samples, c.Samples)
	pick(&out.Noise, c.Noise)
	pick(&out.Interpolator, c.Interpolator)
	pick(&out.IDWPower, c.IDWPower)
	pick(&out.IDWNeighbors, c.IDWNeighbors)
	pick(&out.IDWMaxDistance, c.IDWMaxDistance)
	pick(&out.IDWCapPolicy, c.IDWCapPolicy)
	pick(&out.TPSRegularization, c.TPSRegularization)
	pick(&out.TPSMaxSamples, c.TPSMaxSamples)
	if c.Derivatives != nil {
		out.Derivatives = append([]string(nil), c.Derivatives...)
	}
	pick(&out.ZFactor, c.ZFactor)
	pick(&out.Azimuth, c.Azimuth)
	pick(&out.Altitude, c.Altitude)
	pick(&out.MaxDistance, c.MaxDistance)
	pick(&out.Kernel, c.Kernel)
	pick(&out.KernelRadius, c.KernelRadius)
	pick(&out.Workers, c.Workers)
	pick(&out.BlockSize, c.BlockSize)
	pick(&out.OutputDir, c.OutputDir)
	pick(&out.Render, c.Render)
	return &out
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		x := *v
		*dst = &x
	}
}

// Validate checks the values that are set.
func (c *RunConfig) Validate() error {
	positive := map[string]*float64{
		"extent_size": c.ExtentSize,
		"cell_size":   c.CellSize,
		"idw_power":   c.IDWPower,
		"z_factor":    c.ZFactor,
	}
	for name, v := range positive {
		if v != nil && !(*v > 0) {
			return fmt.Errorf("%s must be positive, got %v", name, *v)
		}
	}
	nonNegative := map[string]*float64{
		"noise":              c.Noise,
		"idw_max_distance":   c.IDWMaxDistance,
		"tps_regularization": c.TPSRegularization,
		"max_distance":       c.MaxDistance,
	}
	for name, v := range nonNegative {
		if v != nil && !(*v >= 0) {
			return fmt.Errorf("%s must be non-negative, got %v", name, *v)
		}
	}
	counts := map[string]*int{
		"samples":         c.Samples,
		"idw_neighbors":   c.IDWNeighbors,
		"tps_max_samples": c.TPSMaxSamples,
		"kernel_radius":   c.KernelRadius,
		"workers":         c.Workers,
		"block_size":      c.BlockSize,
	}
	for name, v := range counts {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, *v)
		}
	}
	if c.Interpolator != nil {
		switch strings.ToLower(*c.Interpolator) {
		case "idw", "tps", "tin":
		default:
			return fmt.Errorf("interpolator must be idw, tps or tin, got %q", *c.Interpolator)
		}
	}
	if c.IDWCapPolicy != nil {
		switch strings.ToLower(*c.IDWCapPolicy) {
		case "count", "distance":
		default:
			return fmt.Errorf("idw_cap_policy must be count or distance, got %q", *c.IDWCapPolicy)
		}
	}
	for _, name := range c.Derivatives {
		if _, err := surface.ParseKind(name); err != nil {
			return fmt.Errorf("derivatives: %w", err)
		}
	}
	if c.Kernel != nil {
		if _, err := density.ParseShape(*c.Kernel); err != nil {
			return fmt.Errorf("kernel: %w", err)
		}
	}
	return nil
}

// Getters return the configured value or the default when unset.

func (c *RunConfig) GetExtentSize() float64 { return deref(c.ExtentSize, 1000) }
func (c *RunConfig) GetCellSize() float64   { return deref(c.CellSize, 10) }
func (c *RunConfig) GetCRS() string         { return deref(c.CRS, "") }
func (c *RunConfig) GetSeed() int64         { return deref(c.Seed, 1) }
func (c *RunConfig) GetSamples() int        { return deref(c.Samples, 400) }
func (c *RunConfig) GetNoise() float64      { return deref(c.Noise, 0) }

func (c *RunConfig) GetInterpolator() string {
	return strings.ToLower(deref(c.Interpolator, "idw"))
}
func (c *RunConfig) GetIDWPower() float64       { return deref(c.IDWPower, 2) }
func (c *RunConfig) GetIDWNeighbors() int       { return deref(c.IDWNeighbors, 12) }
func (c *RunConfig) GetIDWMaxDistance() float64 { return deref(c.IDWMaxDistance, 0) }
func (c *RunConfig) GetIDWCapPolicy() string {
	return strings.ToLower(deref(c.IDWCapPolicy, "count"))
}
func (c *RunConfig) GetTPSRegularization() float64 { return deref(c.TPSRegularization, 0) }
func (c *RunConfig) GetTPSMaxSamples() int         { return deref(c.TPSMaxSamples, 500) }

func (c *RunConfig) GetDerivatives() []string {
	if c.Derivatives == nil {
		return Defaults().Derivatives
	}
	return c.Derivatives
}
func (c *RunConfig) GetZFactor() float64  { return deref(c.ZFactor, 1) }
func (c *RunConfig) GetAzimuth() float64  { return deref(c.Azimuth, 315) }
func (c *RunConfig) GetAltitude() float64 { return deref(c.Altitude, 45) }

// GetMaxDistance maps the JSON-friendly 0 to an unbounded distance.
func (c *RunConfig) GetMaxDistance() float64 {
	if d := deref(c.MaxDistance, 0); d > 0 {
		return d
	}
	return math.Inf(1)
}
func (c *RunConfig) GetKernel() string    { return deref(c.Kernel, "quartic") }
func (c *RunConfig) GetKernelRadius() int { return deref(c.KernelRadius, 5) }

func (c *RunConfig) GetWorkers() int      { return deref(c.Workers, 0) }
func (c *RunConfig) GetBlockSize() int    { return deref(c.BlockSize, 256) }
func (c *RunConfig) GetOutputDir() string { return deref(c.OutputDir, "out") }
func (c *RunConfig) GetRender() bool      { return deref(c.Render, true) }

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
