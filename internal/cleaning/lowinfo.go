package cleaning

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// LowInfoOptions controls the low-information column scan.
type LowInfoOptions struct {
	// Ratio is the threshold both the top value frequency and the unique ratio are compared against.
	Ratio float64
	// Ignore lists columns that are never profiled or reported.
	Ignore []string
}

// DefaultLowInfoOptions flags columns that are more than 95% one value or more than 95% distinct.
func DefaultLowInfoOptions() LowInfoOptions {
	return LowInfoOptions{Ratio: 0.95}
}

// Validate requires Ratio in (0, 1].
func (o LowInfoOptions) Validate() error {
	if !(o.Ratio > 0 && o.Ratio <= 1) {
		return fmt.Errorf("%w: ratio must be in (0, 1], got %v", ErrInvalidOptions, o.Ratio)
	}
	return nil
}

// ColumnProfile holds the frequency statistics of one column over its non-missing entries.
type ColumnProfile struct {
	Name        string
	NonNull     int
	Unique      int
	TopValue    string
	TopFreq     float64
	UniqueRatio float64
	// NearConstant is TopFreq > Ratio; NearUnique is UniqueRatio > Ratio.
	NearConstant bool
	NearUnique   bool
}

// LowInformation reports whether either threshold fired.
func (p ColumnProfile) LowInformation() bool { return p.NearConstant || p.NearUnique }

// ProfileColumns profiles every column of df not listed in opt.Ignore, in column order.
// Columns without non-missing entries get NaN ratios and are never flagged.
func ProfileColumns(df dataframe.DataFrame, opt LowInfoOptions) []ColumnProfile {
	if df.Err != nil {
		return nil
	}
	skip := make(map[string]struct{}, len(opt.Ignore))
	for _, name := range opt.Ignore {
		skip[name] = struct{}{}
	}
	var out []ColumnProfile
	for _, name := range df.Names() {
		if _, ok := skip[name]; ok {
			continue
		}
		p := profile(df.Col(name))
		p.NearConstant = p.TopFreq > opt.Ratio
		p.NearUnique = p.UniqueRatio > opt.Ratio
		out = append(out, p)
	}
	return out
}

// LowInformationColumns returns the near-constant or near-unique columns of df in column order.
// A column that meets both conditions is listed once.
func LowInformationColumns(df dataframe.DataFrame, opt LowInfoOptions) []string {
	var cols []string
	for _, p := range ProfileColumns(df, opt) {
		if p.LowInformation() {
			cols = append(cols, p.Name)
		}
	}
	return cols
}

func profile(s series.Series) ColumnProfile {
	p := ColumnProfile{Name: s.Name}
	counts := make(map[string]int)
	top := 0
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if missing(e, s.Type()) {
			continue
		}
		p.NonNull++
		key := e.String()
		counts[key]++
		if c := counts[key]; c > top {
			top = c
			p.TopValue = key
		}
	}
	p.Unique = len(counts)
	if p.NonNull == 0 {
		p.TopFreq = math.NaN()
		p.UniqueRatio = math.NaN()
		return p
	}
	p.TopFreq = float64(top) / float64(p.NonNull)
	p.UniqueRatio = float64(p.Unique) / float64(p.NonNull)
	return p
}

func missing(e series.Element, t series.Type) bool {
	if e.IsNA() {
		return true
	}
	return t == series.Float && math.IsNaN(e.Float())
}
