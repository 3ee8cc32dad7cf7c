package cleaning

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/hashicorp/go-multierror"
)

// Method names the rule a Partition was produced with.
type Method string

const (
	MethodIQR    Method = "iqr"
	MethodZScore Method = "zscore"
)

// Fence is the closed interval of values considered clean.
type Fence struct {
	Lower     float64
	Upper     float64
	LeftMult  float64
	RightMult float64
}

// Contains reports whether v lies inside the fence. NaN is never contained.
func (f Fence) Contains(v float64) bool { return v >= f.Lower && v <= f.Upper }

// Partition splits the rows of a data frame into outliers and clean rows.
// Every input row lands in exactly one side; row order is preserved in both.
type Partition struct {
	Method  Method
	Feature string
	Fence   Fence

	// Quartiles of the (possibly log-scaled) feature; set by IQR.
	Q25, Q75 float64
	// Moments of the (possibly log-scaled) feature; set by ZScore.
	Moments Moments

	Outliers    dataframe.DataFrame
	Clean       dataframe.DataFrame
	OutlierRows []int
	CleanRows   []int
}

// Rows returns the number of rows the partition was built from.
func (p *Partition) Rows() int { return len(p.OutlierRows) + len(p.CleanRows) }

func split(df dataframe.DataFrame, vals []float64, p *Partition) *Partition {
	p.OutlierRows = make([]int, 0)
	p.CleanRows = make([]int, 0, len(vals))
	for i, v := range vals {
		if p.Fence.Contains(v) {
			p.CleanRows = append(p.CleanRows, i)
		} else {
			p.OutlierRows = append(p.OutlierRows, i)
		}
	}
	p.Outliers = df.Subset(p.OutlierRows)
	p.Clean = df.Subset(p.CleanRows)
	return p
}

func validateMults(left, right float64) error {
	var merr *multierror.Error
	if left < 0 || math.IsNaN(left) {
		merr = multierror.Append(merr, fmt.Errorf("left multiplier must be non-negative, got %v", left))
	}
	if right < 0 || math.IsNaN(right) {
		merr = multierror.Append(merr, fmt.Errorf("right multiplier must be non-negative, got %v", right))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}
