package report

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/dataclean-cli/internal/cleaning"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]int{0, 1, 2, 3, 4, 5}, series.Int, "id"),
		series.New([]float64{1, 2, 3, 4, 5, 100}, series.Float, "x"),
		series.New([]string{"a", "a", "a", "a", "a", "a"}, series.String, "source"),
	)
}

func TestMarkdownOutliers(t *testing.T) {
	require := require.New(t)
	df := sampleFrame()
	p, err := cleaning.IQR(df, "x", cleaning.DefaultIQROptions())
	require.NoError(err)

	r := New("sample.csv", df)
	r.AddPartition(p, 3)
	require.NotEmpty(r.ID)

	md := r.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: sample.csv",
		"Rows: 6",
		"Columns: 3",
		"[OUTLIERS]",
		"Method: iqr on x",
		"Fence: [-1.5, 8.5] (left x1.5, right x1.5)",
		"Quartiles: Q25 2.25, Q75 4.75",
		"Outliers: 1 (16.7%), clean: 5",
		"[OUTLIER ROWS]",
		"| id | x | source |",
	} {
		require.Contains(md, want)
	}
	require.NotContains(md, "[LOW-INFORMATION COLUMNS]")
	require.NotContains(md, "[NOTES]")
}

func TestMarkdownLowInformation(t *testing.T) {
	require := require.New(t)
	df := sampleFrame()
	opt := cleaning.DefaultLowInfoOptions()

	r := New("sample.csv", df)
	r.AddProfiles(cleaning.ProfileColumns(df, opt), opt.Ratio)
	require.Equal([]string{"id", "x", "source"}, r.LowInfo.Flagged)

	md := r.Markdown()
	require.Contains(md, "[LOW-INFORMATION COLUMNS] (ratio > 0.95)")
	require.Contains(md, "- id: near-unique (top 0 16.7%, unique 6/6 = 100.0%)")
	require.Contains(md, "- source: near-constant (top a 100.0%, unique 1/6 = 16.7%)")
	require.Contains(md, "- x: near-unique")
}

func TestYAMLAndJSON(t *testing.T) {
	require := require.New(t)
	df := dataframe.New(series.New([]float64{1, 2}, series.Float, "x"))
	p, err := cleaning.ZScore(df, "x", cleaning.DefaultZScoreOptions())
	require.NoError(err)

	r := New("two.csv", df)
	r.AddPartition(p, 0)

	y, err := r.YAML()
	require.NoError(err)
	var doc map[string]any
	require.NoError(yaml.Unmarshal(y, &doc))
	require.Equal(r.ID, doc["id"])
	out := doc["outliers"].(map[string]any)
	require.Equal("zscore", out["method"])
	require.NotContains(out, "skew", "undefined skew omitted")

	j, err := r.JSON()
	require.NoError(err)
	var back Report
	require.NoError(json.Unmarshal(j, &back))
	require.Equal(r.ID, back.ID)
	require.Nil(back.Outliers.Skew)
	require.InDelta(1.5, *back.Outliers.Mean, 1e-12)
	require.Equal(0, back.Outliers.Outliers)
}

func TestRender(t *testing.T) {
	require := require.New(t)
	r := New("x.csv", sampleFrame())

	md, err := r.Render("")
	require.NoError(err)
	require.True(strings.HasPrefix(md, "[DATASET SUMMARY]"))

	js, err := r.Render("JSON")
	require.NoError(err)
	require.Contains(js, `"name": "x.csv"`)

	_, err = r.Render("xml")
	require.Error(err)
}

func TestUndefinedFenceWarning(t *testing.T) {
	require := require.New(t)
	df := dataframe.New(series.New([]float64{math.NaN(), math.NaN()}, series.Float, "x"))
	p, err := cleaning.IQR(df, "x", cleaning.DefaultIQROptions())
	require.NoError(err)

	r := New("nan.csv", df)
	r.AddPartition(p, 5)
	require.Nil(r.Outliers.Lower)
	require.Len(r.Warnings, 1)
	require.Contains(r.Markdown(), "Fence: [n/a, n/a]")
}
