package quant

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// summary holds the replicate statistics of one set of Cq values.
type summary struct {
	// n is the number of values behind the mean
	n int

	// mean Cq, NaN when no values were usable
	mean float64

	// sd is the sample standard deviation, NaN when n < 2
	sd float64
}

// summarize computes mean and sample standard deviation with gonum.
func summarize(values []float64) summary {
	s := summary{
		n:    len(values),
		mean: math.NaN(),
		sd:   math.NaN(),
	}

	if s.n == 0 {
		return s
	}

	s.mean = stat.Mean(values, nil)
	if s.n >= 2 {
		s.sd = stat.StdDev(values, nil)
	}

	return s
}

// tScore returns the two-sided Student-t critical value for the given
// confidence level and degrees of freedom.
func tScore(confidence float64, df int) float64 {
	if df < 1 {
		return math.NaN()
	}

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return t.Quantile(1 - (1-confidence)/2)
}

// propagateSD combines independent standard deviations by root sum of
// squares, the propagation used throughout Livak & Schmittgen.
func propagateSD(sds ...float64) float64 {
	var sum float64
	for _, sd := range sds {
		sum += sd * sd
	}
	return math.Sqrt(sum)
}

// foldChange converts a (delta-)delta Cq into a relative expression
// ratio: two to the negative power of the difference.
func foldChange(dCq float64) float64 {
	return math.Pow(2, -dCq)
}
