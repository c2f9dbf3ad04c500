package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvraster/density"
	"github.com/katalvlaran/lvraster/distance"
	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/internal/config"
	"github.com/katalvlaran/lvraster/internal/render"
	"github.com/katalvlaran/lvraster/internal/synth"
	"github.com/katalvlaran/lvraster/interp"
	"github.com/katalvlaran/lvraster/surface"
)

// Output summarises one grid written by a run.
type Output struct {
	Name   string   `json:"name"`
	Image  string   `json:"image,omitempty"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Count  int      `json:"count"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	NoData float64  `json:"nodata"`
}

func (o Output) String() string {
	if o.Count == 0 {
		return fmt.Sprintf("%-14s %dx%d empty", o.Name, o.Width, o.Height)
	}
	return fmt.Sprintf("%-14s %dx%d cells=%d min=%.3f max=%.3f mean=%.3f",
		o.Name, o.Width, o.Height, o.Count, *o.Min, *o.Max, *o.Mean)
}

// Result is the summary.json document.
type Result struct {
	RunID   string   `json:"run_id"`
	Dir     string   `json:"-"`
	Samples int      `json:"samples"`
	RMSE    *float64 `json:"interpolation_rmse,omitempty"`
	Outputs []Output `json:"outputs"`
}

// run executes the full pipeline described by cfg.
func run(ctx context.Context, cfg *config.RunConfig) (*Result, error) {
	runID := uuid.New().String()
	dir := filepath.Join(cfg.GetOutputDir(), runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	res := &Result{RunID: runID, Dir: dir}
	log.Printf("run %s: extent %.0f, cell %.2f, seed %d", runID, cfg.GetExtentSize(), cfg.GetCellSize(), cfg.GetSeed())

	workers := cfg.GetWorkers()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	ext := synth.Extent(cfg.GetExtentSize())
	ext.CRS = cfg.GetCRS()
	gen := synth.New(ext, cfg.GetSeed())
	gen.Noise = cfg.GetNoise()
	cell := cfg.GetCellSize()

	dem, err := gen.DEM(cell)
	if err != nil {
		return nil, fmt.Errorf("dem: %w", err)
	}
	if err := res.emit(cfg, "dem", dem, grid.ScanStats(dem), 0); err != nil {
		return nil, err
	}

	// Surface derivatives
	sopts := surface.DefaultOptions()
	sopts.ZFactor = cfg.GetZFactor()
	sopts.Azimuth = cfg.GetAzimuth()
	sopts.Altitude = cfg.GetAltitude()
	sopts.Workers = workers
	for _, name := range cfg.GetDerivatives() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kind, err := surface.ParseKind(name)
		if err != nil {
			return nil, err
		}
		out, st, err := surface.Compute(kind, dem, sopts)
		if err != nil {
			return nil, err
		}
		var pal render.Gray
		if kind == surface.KindHillshade {
			pal = 256
		}
		if err := res.emit(cfg, kind.String(), out, st, pal); err != nil {
			return nil, err
		}
	}

	// Interpolation from scattered samples
	pts := interp.CleanSamples(gen.Samples(cfg.GetSamples()))
	res.Samples = len(pts)
	ip, err := newInterpolator(cfg, pts)
	if err != nil {
		return nil, err
	}
	fopts := interp.DefaultFillOptions()
	fopts.Workers = workers
	fopts.BlockSize = cfg.GetBlockSize()
	surf, st, err := interp.Fill(ctx, ip, dem.Extent(), cell, cell, fopts)
	if err != nil {
		return nil, err
	}
	if rmse, ok := compare(dem, surf); ok {
		res.RMSE = &rmse
		log.Printf("%s surface rmse against terrain: %.3f", cfg.GetInterpolator(), rmse)
	}
	if err := res.emit(cfg, cfg.GetInterpolator(), surf, st, 0); err != nil {
		return nil, err
	}

	// Distance to the nearest sample, straight and across slope friction
	points := make([]distance.Point, len(pts))
	for i, p := range pts {
		points[i] = distance.Point{X: p.X, Y: p.Y}
	}
	dopts := distance.DefaultOptions()
	dopts.MaxDistance = cfg.GetMaxDistance()
	mask, err := distance.Rasterize(points, dem.Extent(), cell)
	if err != nil {
		return nil, err
	}
	dist, st, err := distance.Transform(mask, dopts)
	if err != nil {
		return nil, err
	}
	if err := res.emit(cfg, "distance", dist, st, 0); err != nil {
		return nil, err
	}
	friction, err := slopeFriction(dem, sopts)
	if err != nil {
		return nil, err
	}
	cost, st, err := distance.Cost(mask, friction, dopts)
	if err != nil {
		return nil, err
	}
	if err := res.emit(cfg, "cost", cost, st, 0); err != nil {
		return nil, err
	}

	// Sample density
	shape, err := density.ParseShape(cfg.GetKernel())
	if err != nil {
		return nil, err
	}
	kopts := density.DefaultOptions()
	kopts.Shape = shape
	kopts.Radius = cfg.GetKernelRadius()
	dens, st, err := density.Points(pts, dem.Extent(), cell, kopts)
	if err != nil {
		return nil, err
	}
	if err := res.emit(cfg, "density", dens, st, 0); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	return res, nil
}

func newInterpolator(cfg *config.RunConfig, pts []interp.SamplePoint) (interp.Interpolator, error) {
	switch cfg.GetInterpolator() {
	case "tps":
		if n := cfg.GetTPSMaxSamples(); n > 0 && len(pts) > n {
			log.Printf("tps: using %d of %d samples", n, len(pts))
			pts = pts[:n]
		}
		return interp.NewTPS(pts, interp.TPSOptions{Regularization: cfg.GetTPSRegularization()})
	case "tin":
		return interp.NewTIN(pts)
	default:
		opts := interp.DefaultIDWOptions()
		opts.Power = cfg.GetIDWPower()
		opts.K = cfg.GetIDWNeighbors()
		opts.MaxDistance = cfg.GetIDWMaxDistance()
		if cfg.GetIDWCapPolicy() == "distance" {
			opts.CapPolicy = interp.DistanceDominates
		}
		return interp.NewIDW(pts, opts)
	}
}

// slopeFriction turns slope into a travel friction of 1 at flat ground
// rising to 3 at 90°.
func slopeFriction(dem *grid.Grid, opts surface.Options) (*grid.Grid, error) {
	opts.Units = surface.Degrees
	slope, _, err := surface.Slope(dem, opts)
	if err != nil {
		return nil, err
	}
	for r := 0; r < slope.Height(); r++ {
		for c := 0; c < slope.Width(); c++ {
			if slope.Valid(c, r) {
				slope.Put(c, r, 1+slope.Value(c, r)/45)
			}
		}
	}
	return slope, nil
}

// compare returns the root-mean-square difference over cells valid in both
// grids, which must share a shape.
func compare(a, b *grid.Grid) (float64, bool) {
	var sum float64
	var n int
	for r := 0; r < a.Height(); r++ {
		for c := 0; c < a.Width(); c++ {
			if !a.Valid(c, r) || !b.Valid(c, r) {
				continue
			}
			d := a.Value(c, r) - b.Value(c, r)
			sum += d * d
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return math.Sqrt(sum / float64(n)), true
}

// emit records g in the summary and renders it when enabled. A zero pal
// selects the default heat palette.
func (res *Result) emit(cfg *config.RunConfig, name string, g *grid.Grid, st grid.Stats, pal render.Gray) error {
	o := Output{Name: name, Width: g.Width(), Height: g.Height(), Count: st.Count, NoData: g.NoData()}
	if !st.Empty() {
		lo, hi, mean := st.Min, st.Max, st.Mean()
		o.Min, o.Max, o.Mean = &lo, &hi, &mean
	}
	if cfg.GetRender() {
		opts := render.DefaultOptions()
		opts.Title = name
		if pal > 0 {
			opts.Palette = pal
		}
		o.Image = name + ".png"
		if err := render.Save(g, filepath.Join(res.Dir, o.Image), opts); err != nil {
			return err
		}
	}
	res.Outputs = append(res.Outputs, o)
	return nil
}
