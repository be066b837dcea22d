package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

func ptr(v float64) *float64 { return &v }

func TestWeightedTwoPoints(t *testing.T) {
	s := Sample{{Weight: 1, Value: 2}, {Weight: 1, Value: 4}}
	avg, err := WeightedAverage(s)
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)

	med, err := WeightedMedian(s)
	require.NoError(t, err)
	assert.Equal(t, 2.0, med, "exact landing on the half-point returns the lower value")

	std, err := WeightedStdDev(s, avg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, std)
}

func TestEqualWeightsGiveArithmeticMean(t *testing.T) {
	cases := [][]float64{
		{5},
		{1, 2, 3, 4},
		{-3, 0, 0, 9.5, 12.25},
		{1e6, 1e-6, 42},
	}
	for _, vals := range cases {
		for _, w := range []float64{0.25, 1, 7} {
			var s Sample
			sum := 0.0
			for _, v := range vals {
				s = append(s, Point{Weight: w, Value: v})
				sum += v
			}
			got, err := WeightedAverage(s)
			require.NoError(t, err)
			assert.InDelta(t, sum/float64(len(vals)), got, 1e-9, "values %v weight %v", vals, w)
		}
	}
}

func TestStdDevNonNegative(t *testing.T) {
	samples := []Sample{
		{{Weight: 1, Value: 3}},
		{{Weight: 0.2, Value: -10}, {Weight: 3, Value: 10}},
		{{Weight: 2, Value: 1}, {Weight: 2, Value: 1}, {Weight: 2, Value: 1}},
		{{Weight: 0.5, Value: 0}, {Weight: 1.5, Value: 1e9}},
	}
	for _, s := range samples {
		mean, err := WeightedAverage(s)
		require.NoError(t, err)
		std, err := WeightedStdDev(s, mean)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, std, 0.0)
	}
}

func TestSinglePointMedian(t *testing.T) {
	for _, p := range []Point{{1, 7}, {0.01, -2.5}, {100, 0}} {
		got, err := WeightedMedian(Sample{p})
		require.NoError(t, err)
		assert.Equal(t, p.Value, got)
	}
}

func TestMedianRespectsWeights(t *testing.T) {
	s := Sample{{Weight: 1, Value: 9}, {Weight: 5, Value: 1}, {Weight: 1, Value: 3}}
	got, err := WeightedMedian(s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	s = Sample{{Weight: 1, Value: 1}, {Weight: 1, Value: 2}, {Weight: 3, Value: 3}}
	got, err = WeightedMedian(s)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestEmptyAndZeroWeightAreNaN(t *testing.T) {
	for _, s := range []Sample{nil, {{Weight: 0, Value: 4}}} {
		avg, err := WeightedAverage(s)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(avg))
		med, err := WeightedMedian(s)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(med))
		std, err := WeightedStdDev(s, avg)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(std))
	}
}

func TestInvalidInput(t *testing.T) {
	bad := []Sample{
		{{Weight: 1, Value: math.NaN()}},
		{{Weight: 1, Value: 1}, {Weight: math.Inf(1), Value: 2}},
		{{Weight: -1, Value: 2}},
		{{Weight: 1, Value: math.Inf(-1)}},
	}
	for _, s := range bad {
		var inv *errs.InvalidInputError
		_, err := WeightedAverage(s)
		assert.True(t, errors.As(err, &inv), "average %v", s)
		_, err = WeightedMedian(s)
		assert.True(t, errors.As(err, &inv), "median %v", s)
		_, err = WeightedStdDev(s, 0)
		assert.True(t, errors.As(err, &inv), "stddev %v", s)
	}
	_, err := WeightedAverage(bad[1])
	var inv *errs.InvalidInputError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, 1, inv.Index)
}

func TestClean(t *testing.T) {
	raw := []RawPoint{
		{Weight: 1, Value: ptr(0)},
		{Weight: 0, Value: ptr(3)},
		{Weight: 1, Value: nil},
		{Weight: 1, Value: ptr(math.NaN())},
		{Weight: -2, Value: ptr(5)},
		{Weight: 0.5, Value: ptr(6)},
	}
	assert.Equal(t, Sample{{Weight: 1, Value: 0}, {Weight: 0.5, Value: 6}}, Clean(raw))
}

func TestSummarize(t *testing.T) {
	sum, err := Summarize(Sample{{1, 1}, {1, 2}, {1, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 3.0, sum.Mean, 1e-12)
	assert.Equal(t, 2.0, sum.Median)
	assert.InDelta(t, 9.0, sum.Sum, 1e-12)
	assert.InDelta(t, math.Sqrt(14.0/3.0), sum.StdDev, 1e-12)

	_, err = Summarize(Sample{{1, math.NaN()}})
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 44.44, Round(4*100/9.0, 2))
	assert.Equal(t, 2.0, Round(2, 2))
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
}
