package cleaning

import "github.com/go-gota/gota/dataframe"

// autoBase is the multiplier the skew adjustment is added to when Auto is set.
const autoBase = 3.0

// ZScoreOptions controls z-score detection.
type ZScoreOptions struct {
	// Auto widens the fence on the side opposite the skew by 3*skew.
	Auto      bool
	LogScale  bool
	LogAddOne bool
	LeftMult  float64
	RightMult float64
}

// DefaultZScoreOptions returns symmetric three-sigma fences on the raw values.
func DefaultZScoreOptions() ZScoreOptions {
	return ZScoreOptions{LeftMult: 3, RightMult: 3, LogAddOne: true}
}

// Validate rejects negative or NaN multipliers.
func (o ZScoreOptions) Validate() error { return validateMults(o.LeftMult, o.RightMult) }

// ZScore partitions df on feature: rows outside [mean - LeftMult*sd, mean + RightMult*sd] are outliers.
//
// With Auto, a right-skewed feature (skew > 0) gets LeftMult = 3 + 3*skew and a left-skewed one
// gets RightMult = 3 - 3*skew. This is a heuristic to stop the short tail from being over-flagged;
// a zero or undefined skew keeps the caller's multipliers.
func ZScore(df dataframe.DataFrame, feature string, opt ZScoreOptions) (*Partition, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	vals, err := featureValues(df, feature, opt.LogScale, opt.LogAddOne)
	if err != nil {
		return nil, err
	}
	m := moments(vals)
	left, right := opt.LeftMult, opt.RightMult
	if opt.Auto {
		adj := m.Skew * 3
		if adj > 0 {
			left = autoBase + adj
		}
		if adj < 0 {
			right = autoBase - adj
		}
	}
	p := &Partition{
		Method:  MethodZScore,
		Feature: feature,
		Moments: m,
		Fence: Fence{
			Lower:     m.Mean - left*m.StdDev,
			Upper:     m.Mean + right*m.StdDev,
			LeftMult:  left,
			RightMult: right,
		},
	}
	return split(df, vals, p), nil
}
