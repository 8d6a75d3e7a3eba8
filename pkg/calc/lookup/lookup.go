// Package lookup holds the fixed-table helpers shared by the calculators:
// ordered threshold bands and piecewise-linear interpolation.
package lookup

import (
	"math"
	"sort"
)

// Band is one half-open interval of a threshold table. A value x belongs to
// the band when previous.Below <= x < Below.
type Band[T any] struct {
	Below float64
	Value T
}

// Bands is an ordered threshold table. Below must be strictly increasing and
// the last band must be open-ended (math.Inf(1)), so every input maps to
// exactly one band.
type Bands[T any] []Band[T]

// Find returns the value of the band containing x.
func (b Bands[T]) Find(x float64) T {
	i := sort.Search(len(b), func(i int) bool { return x < b[i].Below })
	if i == len(b) {
		// Only reachable for NaN or a table without an open upper band.
		panic("lookup: value outside threshold table")
	}
	return b[i].Value
}

// Index returns the position of the band containing x.
func (b Bands[T]) Index(x float64) int {
	i := sort.Search(len(b), func(i int) bool { return x < b[i].Below })
	if i == len(b) {
		panic("lookup: value outside threshold table")
	}
	return i
}

// Range returns the [lower, upper) bounds of band i. The first band starts at
// -Inf and the last ends at +Inf.
func (b Bands[T]) Range(i int) (lower, upper float64) {
	lower = math.Inf(-1)
	if i > 0 {
		lower = b[i-1].Below
	}
	return lower, b[i].Below
}

// Point is one (x, y) breakpoint of a piecewise-linear curve.
type Point struct {
	X, Y float64
}

// Interpolate evaluates the piecewise-linear curve through points at x.
// Points must be sorted by strictly increasing X. Outside the covered range
// the endpoint value is returned; there is no extrapolation.
func Interpolate(points []Point, x float64) float64 {
	n := len(points)
	if n == 0 {
		panic("lookup: no points to interpolate")
	}
	if x <= points[0].X {
		return points[0].Y
	}
	if x >= points[n-1].X {
		return points[n-1].Y
	}
	i := sort.Search(n, func(i int) bool { return points[i].X > x })
	lo, hi := points[i-1], points[i]
	return Lerp(lo.Y, hi.Y, (x-lo.X)/(hi.X-lo.X))
}

// Lerp blends a and b linearly; t=0 gives a and t=1 gives b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
