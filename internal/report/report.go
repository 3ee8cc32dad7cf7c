package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataclean-cli/internal/cleaning"
	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Report summarizes one cleaning run over a dataset.
type Report struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Rows     int             `json:"rows" yaml:"rows"`
	Columns  []string        `json:"columns" yaml:"columns"`
	Outliers *OutlierSummary `json:"outliers,omitempty" yaml:"outliers,omitempty"`
	LowInfo  *LowInfoSummary `json:"low_information,omitempty" yaml:"low_information,omitempty"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// OutlierSummary describes a detector partition. Undefined statistics are left nil.
type OutlierSummary struct {
	Method    string   `json:"method" yaml:"method"`
	Feature   string   `json:"feature" yaml:"feature"`
	Lower     *float64 `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper     *float64 `json:"upper,omitempty" yaml:"upper,omitempty"`
	LeftMult  float64  `json:"left_mult" yaml:"left_mult"`
	RightMult float64  `json:"right_mult" yaml:"right_mult"`
	Q25       *float64 `json:"q25,omitempty" yaml:"q25,omitempty"`
	Q75       *float64 `json:"q75,omitempty" yaml:"q75,omitempty"`
	Mean      *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	StdDev    *float64 `json:"std,omitempty" yaml:"std,omitempty"`
	Skew      *float64 `json:"skew,omitempty" yaml:"skew,omitempty"`
	Outliers  int      `json:"outliers" yaml:"outliers"`
	Clean     int      `json:"clean" yaml:"clean"`
	// Rows are input row indices of the outliers; Samples holds the first few as records.
	Rows    []int      `json:"rows" yaml:"rows"`
	Samples [][]string `json:"-" yaml:"-"`
}

// LowInfoSummary lists the profiled columns and which of them were flagged.
type LowInfoSummary struct {
	Ratio   float64         `json:"ratio" yaml:"ratio"`
	Flagged []string        `json:"flagged" yaml:"flagged"`
	Columns []ColumnSummary `json:"columns" yaml:"columns"`
}

// ColumnSummary is the serializable form of a cleaning.ColumnProfile.
type ColumnSummary struct {
	Name        string   `json:"name" yaml:"name"`
	NonNull     int      `json:"non_null" yaml:"non_null"`
	Unique      int      `json:"unique" yaml:"unique"`
	TopValue    string   `json:"top_value,omitempty" yaml:"top_value,omitempty"`
	TopFreq     *float64 `json:"top_freq,omitempty" yaml:"top_freq,omitempty"`
	UniqueRatio *float64 `json:"unique_ratio,omitempty" yaml:"unique_ratio,omitempty"`
	Reasons     []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// New starts a report for df.
func New(name string, df dataframe.DataFrame) *Report {
	return &Report{
		ID:      uuid.NewString(),
		Name:    name,
		Rows:    df.Nrow(),
		Columns: df.Names(),
	}
}

// AddPartition records a detector result, keeping up to sampleRows outlier rows for display.
func (r *Report) AddPartition(p *cleaning.Partition, sampleRows int) {
	s := &OutlierSummary{
		Method:    string(p.Method),
		Feature:   p.Feature,
		Lower:     finite(p.Fence.Lower),
		Upper:     finite(p.Fence.Upper),
		LeftMult:  p.Fence.LeftMult,
		RightMult: p.Fence.RightMult,
		Outliers:  len(p.OutlierRows),
		Clean:     len(p.CleanRows),
		Rows:      p.OutlierRows,
	}
	switch p.Method {
	case cleaning.MethodIQR:
		s.Q25, s.Q75 = finite(p.Q25), finite(p.Q75)
	case cleaning.MethodZScore:
		s.Mean = finite(p.Moments.Mean)
		s.StdDev = finite(p.Moments.StdDev)
		s.Skew = finite(p.Moments.Skew)
	}
	if sampleRows > 0 && p.Outliers.Nrow() > 0 {
		recs := p.Outliers.Records()[1:] // drop header
		if len(recs) > sampleRows {
			recs = recs[:sampleRows]
		}
		s.Samples = recs
	}
	r.Outliers = s
	if math.IsNaN(p.Fence.Lower) || math.IsNaN(p.Fence.Upper) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("fence for %q is undefined; every row was classified as an outlier", p.Feature))
	}
}

// AddProfiles records a low-information scan.
func (r *Report) AddProfiles(profiles []cleaning.ColumnProfile, ratio float64) {
	s := &LowInfoSummary{Ratio: ratio, Flagged: []string{}}
	for _, p := range profiles {
		c := ColumnSummary{
			Name:        p.Name,
			NonNull:     p.NonNull,
			Unique:      p.Unique,
			TopValue:    p.TopValue,
			TopFreq:     finite(p.TopFreq),
			UniqueRatio: finite(p.UniqueRatio),
		}
		if p.NearConstant {
			c.Reasons = append(c.Reasons, "near-constant")
		}
		if p.NearUnique {
			c.Reasons = append(c.Reasons, "near-unique")
		}
		if p.LowInformation() {
			s.Flagged = append(s.Flagged, p.Name)
		}
		if p.NonNull == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("column %q has no values", p.Name))
		}
		s.Columns = append(s.Columns, c)
	}
	r.LowInfo = s
}

// YAML encodes the report as YAML.
func (r *Report) YAML() ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

// JSON encodes the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// Render encodes the report in the named format: markdown (default), yaml or json.
func (r *Report) Render(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "md", "markdown":
		return r.Markdown(), nil
	case "yaml", "yml":
		b, err := r.YAML()
		return string(b), err
	case "json":
		b, err := r.JSON()
		return string(b), err
	default:
		return "", fmt.Errorf("unsupported format: %s (use markdown|yaml|json)", format)
	}
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Columns)))

	if o := r.Outliers; o != nil {
		b.WriteString("\n[OUTLIERS]\n")
		b.WriteString(fmt.Sprintf("Method: %s on %s\n", o.Method, safeName(o.Feature)))
		b.WriteString(fmt.Sprintf("Fence: [%s, %s] (left x%.4g, right x%.4g)\n", num(o.Lower), num(o.Upper), o.LeftMult, o.RightMult))
		switch o.Method {
		case string(cleaning.MethodIQR):
			b.WriteString(fmt.Sprintf("Quartiles: Q25 %s, Q75 %s\n", num(o.Q25), num(o.Q75)))
		case string(cleaning.MethodZScore):
			b.WriteString(fmt.Sprintf("Moments: mean %s, std %s, skew %s\n", num(o.Mean), num(o.StdDev), num(o.Skew)))
		}
		total := o.Outliers + o.Clean
		pct := 0.0
		if total > 0 {
			pct = float64(o.Outliers) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("Outliers: %d (%.1f%%), clean: %d\n", o.Outliers, pct, o.Clean))
		if len(o.Samples) > 0 {
			b.WriteString("\n[OUTLIER ROWS]\n")
			writeTable(&b, r.Columns, o.Samples)
		}
	}

	if li := r.LowInfo; li != nil {
		b.WriteString(fmt.Sprintf("\n[LOW-INFORMATION COLUMNS] (ratio > %.4g)\n", li.Ratio))
		if len(li.Flagged) == 0 {
			b.WriteString("- none\n")
		}
		for _, c := range li.Columns {
			if len(c.Reasons) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: %s (top %s %s, unique %d/%d = %s)\n",
				safeName(c.Name), strings.Join(c.Reasons, ", "), safeVal(c.TopValue), pctOf(c.TopFreq), c.Unique, c.NonNull, pctOf(c.UniqueRatio)))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, cols []string, rows [][]string) {
	b.WriteString("| ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(c))
	}
	b.WriteString(" |\n| ")
	for i := range cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if len(val) > 80 {
				val = val[:77] + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func num(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", *v)
}

func pctOf(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
