package cleaning

import "github.com/go-gota/gota/dataframe"

// IQROptions controls Tukey fence detection.
type IQROptions struct {
	// LogScale fences ln(v+1) (or ln(v) without LogAddOne) instead of v.
	LogScale  bool
	LogAddOne bool
	// LeftMult and RightMult scale the IQR below Q25 and above Q75.
	LeftMult  float64
	RightMult float64
}

// DefaultIQROptions returns the classic 1.5 IQR fences on the raw values.
func DefaultIQROptions() IQROptions {
	return IQROptions{LeftMult: 1.5, RightMult: 1.5, LogAddOne: true}
}

// Validate rejects negative or NaN multipliers.
func (o IQROptions) Validate() error { return validateMults(o.LeftMult, o.RightMult) }

// IQR partitions df on feature using Tukey fences:
// rows whose value falls outside [Q25 - LeftMult*IQR, Q75 + RightMult*IQR] are outliers.
func IQR(df dataframe.DataFrame, feature string, opt IQROptions) (*Partition, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	vals, err := featureValues(df, feature, opt.LogScale, opt.LogAddOne)
	if err != nil {
		return nil, err
	}
	q25, q75 := quartiles(vals)
	iqr := q75 - q25
	p := &Partition{
		Method:  MethodIQR,
		Feature: feature,
		Q25:     q25,
		Q75:     q75,
		Fence: Fence{
			Lower:     q25 - opt.LeftMult*iqr,
			Upper:     q75 + opt.RightMult*iqr,
			LeftMult:  opt.LeftMult,
			RightMult: opt.RightMult,
		},
	}
	return split(df, vals, p), nil
}
