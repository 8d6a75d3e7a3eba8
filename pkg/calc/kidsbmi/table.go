package kidsbmi

import (
	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
)

// Percentiles tabulated per age row, in column order.
var Percentiles = [...]float64{5, 10, 25, 50, 75, 85, 95}

const (
	firstAgeMonths = 24
	lastAgeMonths  = 240
	rowStepMonths  = 12
)

// row holds the BMI at each of Percentiles for one age.
type row [len(Percentiles)]float64

// BMI-for-age reference, one row per whole year from 2 to 20 years.
var boys = [...]row{
	{14.8, 15.2, 15.8, 16.6, 17.4, 18.2, 19.3}, // 2
	{14.3, 14.7, 15.3, 16.0, 16.8, 17.4, 18.3}, // 3
	{14.0, 14.3, 14.9, 15.6, 16.4, 16.9, 17.8}, // 4
	{13.8, 14.1, 14.7, 15.4, 16.2, 16.8, 17.9}, // 5
	{13.7, 14.0, 14.6, 15.3, 16.2, 16.9, 18.4}, // 6
	{13.7, 14.0, 14.6, 15.5, 16.5, 17.4, 19.1}, // 7
	{13.8, 14.1, 14.8, 15.8, 17.0, 17.9, 20.0}, // 8
	{14.0, 14.3, 15.1, 16.1, 17.5, 18.6, 21.0}, // 9
	{14.2, 14.6, 15.4, 16.6, 18.1, 19.4, 22.1}, // 10
	{14.5, 14.9, 15.8, 17.2, 18.8, 20.2, 23.2}, // 11
	{14.9, 15.3, 16.3, 17.8, 19.6, 21.0, 24.2}, // 12
	{15.4, 15.8, 16.9, 18.4, 20.4, 21.8, 25.1}, // 13
	{16.0, 16.4, 17.5, 19.1, 21.1, 22.6, 26.0}, // 14
	{16.5, 17.0, 18.1, 19.8, 21.9, 23.4, 26.8}, // 15
	{17.1, 17.6, 18.7, 20.5, 22.6, 24.2, 27.5}, // 16
	{17.7, 18.2, 19.3, 21.1, 23.3, 24.9, 28.2}, // 17
	{18.2, 18.7, 19.9, 21.7, 24.0, 25.6, 28.9}, // 18
	{18.7, 19.2, 20.4, 22.2, 24.6, 26.3, 29.7}, // 19
	{19.1, 19.6, 20.9, 22.8, 25.2, 27.0, 30.6}, // 20
}

var girls = [...]row{
	{14.4, 14.8, 15.4, 16.1, 16.9, 17.6, 18.7}, // 2
	{14.0, 14.3, 14.9, 15.6, 16.5, 17.2, 18.3}, // 3
	{13.7, 14.0, 14.6, 15.3, 16.2, 16.8, 18.0}, // 4
	{13.5, 13.8, 14.4, 15.2, 16.1, 16.8, 18.3}, // 5
	{13.4, 13.7, 14.3, 15.2, 16.2, 17.1, 18.8}, // 6
	{13.4, 13.7, 14.4, 15.4, 16.6, 17.6, 19.7}, // 7
	{13.5, 13.9, 14.7, 15.8, 17.2, 18.3, 20.7}, // 8
	{13.7, 14.1, 15.0, 16.3, 17.9, 19.1, 21.8}, // 9
	{14.0, 14.5, 15.5, 16.9, 18.6, 20.0, 22.9}, // 10
	{14.4, 14.9, 16.0, 17.5, 19.4, 20.8, 24.0}, // 11
	{14.8, 15.4, 16.5, 18.1, 20.2, 21.7, 25.1}, // 12
	{15.3, 15.9, 17.1, 18.7, 20.9, 22.5, 26.1}, // 13
	{15.8, 16.4, 17.6, 19.4, 21.6, 23.3, 27.0}, // 14
	{16.3, 16.8, 18.1, 19.9, 22.3, 24.0, 27.8}, // 15
	{16.7, 17.2, 18.5, 20.4, 22.8, 24.6, 28.6}, // 16
	{17.0, 17.6, 18.9, 20.8, 23.3, 25.1, 29.3}, // 17
	{17.3, 17.9, 19.2, 21.2, 23.7, 25.6, 30.0}, // 18
	{17.6, 18.2, 19.5, 21.5, 24.1, 26.1, 30.7}, // 19
	{17.8, 18.4, 19.8, 21.7, 24.5, 26.5, 31.2}, // 20
}

func table(g calc.Gender) []row {
	switch g {
	case calc.Male:
		return boys[:]
	case calc.Female:
		return girls[:]
	default:
		calc.UnknownVariant("gender", g)
		return nil
	}
}

// ReferenceRow returns the BMI at each tabulated percentile for ageMonths,
// interpolated linearly between the two bracketing yearly rows. Ages outside
// the table use the nearest endpoint row.
func ReferenceRow(g calc.Gender, ageMonths float64) [len(Percentiles)]float64 {
	rows := table(g)

	if ageMonths <= firstAgeMonths {
		return rows[0]
	}
	if ageMonths >= lastAgeMonths {
		return rows[len(rows)-1]
	}

	pos := (ageMonths - firstAgeMonths) / rowStepMonths
	i := int(pos)
	t := pos - float64(i)

	var out row
	for k := range out {
		out[k] = lookup.Lerp(rows[i][k], rows[i+1][k], t)
	}
	return out
}

// PercentileFor locates bmi on the reference row and returns a continuous
// percentile in [0, 99].
func PercentileFor(g calc.Gender, ageMonths, bmi float64) float64 {
	ref := ReferenceRow(g, ageMonths)

	pts := make([]lookup.Point, 0, len(Percentiles)+2)
	// Tails: 0 at 80% of the 5th-percentile BMI, 99 at 120% of the 95th.
	pts = append(pts, lookup.Point{X: ref[0] * 0.8, Y: 0})
	for k, p := range Percentiles {
		pts = append(pts, lookup.Point{X: ref[k], Y: p})
	}
	pts = append(pts, lookup.Point{X: ref[len(ref)-1] * 1.2, Y: 99})

	return lookup.Interpolate(pts, bmi)
}
