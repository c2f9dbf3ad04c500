package density_test

import (
	"testing"

	"github.com/katalvlaran/lvraster/density"
	"github.com/katalvlaran/lvraster/grid"
	"github.com/katalvlaran/lvraster/internal/synth"
)

// BenchmarkPoints measures 5k quartic deposits of radius 10 on a 500×500 grid.
func BenchmarkPoints(b *testing.B) {
	samples := synth.New(synth.Extent(500), 1).Samples(5000)
	ext := grid.NewExtent(0, 0, 500, 500, "")
	opts := density.DefaultOptions()
	opts.Radius = 10
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := density.Points(samples, ext, 1, opts); err != nil {
			b.Fatal(err)
		}
	}
}
