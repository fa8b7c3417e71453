package climate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes the min/avg/max triple of values. An empty input yields the
// null triple.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	avg := stat.Mean(values, nil)

	return Stats{
		TMin:  &lo,
		TAvg:  &avg,
		TMax:  &hi,
		Count: len(values),
	}
}
