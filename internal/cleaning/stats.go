package cleaning

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"
)

// Moments summarizes the non-NaN values a z-score fence is derived from.
type Moments struct {
	N      int
	Mean   float64
	StdDev float64
	Skew   float64
}

// featureValues returns the feature column as float64, one entry per row.
// With logScale the values are replaced by ln(v+1), or ln(v) when addOne is false.
func featureValues(df dataframe.DataFrame, feature string, logScale, addOne bool) ([]float64, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: %w", df.Err)
	}
	if !hasColumn(df, feature) {
		return nil, &MissingColumnError{Name: feature}
	}
	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}
	col := df.Col(feature)
	switch col.Type() {
	case series.Int, series.Float:
	default:
		return nil, &NonNumericColumnError{Name: feature, Type: col.Type()}
	}
	vals := col.Float()
	if logScale {
		shift := 0.0
		if addOne {
			shift = 1
		}
		for i, v := range vals {
			vals[i] = math.Log(v + shift)
		}
	}
	return vals, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// dropNaN copies vals without NaN entries. Infinities are kept.
func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// quantile interpolates linearly between the closest ranks of sorted (pos = q*(n-1)).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// quartiles returns Q25 and Q75 of the non-NaN values.
func quartiles(vals []float64) (q25, q75 float64) {
	sorted := dropNaN(vals)
	sort.Float64s(sorted)
	return quantile(sorted, 0.25), quantile(sorted, 0.75)
}

// moments computes mean, sample standard deviation and adjusted sample skewness.
// Skew is NaN below three values and 0 when the values do not vary.
func moments(vals []float64) Moments {
	x := dropNaN(vals)
	m := Moments{N: len(x), Mean: math.NaN(), StdDev: math.NaN(), Skew: math.NaN()}
	if len(x) == 0 {
		return m
	}
	m.Mean, m.StdDev = stat.MeanStdDev(x, nil)
	if len(x) < 3 {
		return m
	}
	if m.StdDev == 0 {
		m.Skew = 0
		return m
	}
	m.Skew = stat.Skew(x, nil)
	return m
}
