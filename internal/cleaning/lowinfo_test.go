package cleaning

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

func TestLowInformationThreshold(t *testing.T) {
	require := require.New(t)
	df := dataframe.New(series.New([]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 2}, series.Int, "flag"))

	require.Empty(LowInformationColumns(df, DefaultLowInfoOptions()))
	require.Equal([]string{"flag"}, LowInformationColumns(df, LowInfoOptions{Ratio: 0.85}))

	prof := ProfileColumns(df, DefaultLowInfoOptions())
	require.Len(prof, 1)
	require.InDelta(0.9, prof[0].TopFreq, 1e-12)
	require.InDelta(0.2, prof[0].UniqueRatio, 1e-12)
	require.Equal("1", prof[0].TopValue)
	require.Equal(2, prof[0].Unique)
	require.Equal(10, prof[0].NonNull)
}

func TestLowInformationColumnsOrderAndIgnore(t *testing.T) {
	require := require.New(t)
	df := dataframe.New(
		series.New([]string{"u1", "u2", "u3", "u4"}, series.String, "user_id"),
		series.New([]float64{1.5, 2.5, 1.5, 3.5}, series.Float, "score"),
		series.New([]string{"x", "x", "x", "x"}, series.String, "source"),
		series.New([]int{7, 7, 7, 7}, series.Int, "version"),
	)

	require.Equal([]string{"user_id", "source", "version"}, LowInformationColumns(df, DefaultLowInfoOptions()))

	opt := DefaultLowInfoOptions()
	opt.Ignore = []string{"user_id", "version"}
	require.Equal([]string{"source"}, LowInformationColumns(df, opt))
	for _, p := range ProfileColumns(df, opt) {
		require.NotEqual("user_id", p.Name)
		require.NotEqual("version", p.Name)
	}
}

func TestLowInformationBothConditionsListedOnce(t *testing.T) {
	require := require.New(t)
	df := dataframe.New(series.New([]string{"only"}, series.String, "c"))

	prof := ProfileColumns(df, DefaultLowInfoOptions())
	require.True(prof[0].NearConstant)
	require.True(prof[0].NearUnique)
	require.Equal([]string{"c"}, LowInformationColumns(df, DefaultLowInfoOptions()))
}

func TestLowInformationSkipsMissing(t *testing.T) {
	require := require.New(t)
	nan := math.NaN()
	df := dataframe.New(
		series.New([]float64{nan, nan, nan}, series.Float, "empty"),
		series.New([]float64{1, nan, 1}, series.Float, "sparse"),
	)

	prof := ProfileColumns(df, DefaultLowInfoOptions())
	require.Len(prof, 2)
	require.Equal(0, prof[0].NonNull)
	require.True(math.IsNaN(prof[0].TopFreq))
	require.False(prof[0].LowInformation())

	require.Equal(2, prof[1].NonNull)
	require.Equal(1.0, prof[1].TopFreq)
	require.Equal([]string{"sparse"}, LowInformationColumns(df, DefaultLowInfoOptions()))
}

func TestLowInfoOptionsValidate(t *testing.T) {
	require := require.New(t)
	require.NoError(DefaultLowInfoOptions().Validate())
	require.NoError(LowInfoOptions{Ratio: 1}.Validate())
	require.ErrorIs(LowInfoOptions{Ratio: 0}.Validate(), ErrInvalidOptions)
	require.ErrorIs(LowInfoOptions{Ratio: 1.2}.Validate(), ErrInvalidOptions)
}
