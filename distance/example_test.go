// File: distance/example_test.go
package distance_test

import (
	"fmt"

	"github.com/katalvlaran/lvraster/distance"
	"github.com/katalvlaran/lvraster/grid"
)

////////////////////////////////////////////////////////////////////////////////
// Example: distance to a single target with 10 m cells
////////////////////////////////////////////////////////////////////////////////

// ExampleTransform prints the distance grid around one target cell. Cells
// beyond 25 m would be NoData.
func ExampleTransform() {
	mask, _ := grid.FromRows([][]float64{
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
	}, grid.NewExtent(0, 0, 40, 30, ""))

	opts := distance.DefaultOptions()
	opts.MaxDistance = 25
	out, stats, _ := distance.Transform(mask, opts)

	for r := 0; r < out.Height(); r++ {
		for c := 0; c < out.Width(); c++ {
			fmt.Printf("%6.2f", out.Value(c, r))
		}
		fmt.Println()
	}
	fmt.Printf("max=%.3f count=%d\n", stats.Max, stats.Count)

	// Output:
	//  14.14 10.00 14.14 22.36
	//  10.00  0.00 10.00 20.00
	//  14.14 10.00 14.14 22.36
	// max=22.361 count=12
}
