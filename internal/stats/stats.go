package stats

import (
	"math"
	"sort"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

// Point is one weighted observation.
type Point struct {
	Weight float64
	Value  float64
}

// Sample is an ordered list of weighted observations.
type Sample []Point

// RawPoint is an observation before cleaning. A nil Value means the card has no value.
type RawPoint struct {
	Weight float64
	Value  *float64
}

// Clean drops points whose weight is not positive or whose value is missing or NaN.
// Zero values are kept.
func Clean(raw []RawPoint) Sample {
	out := make(Sample, 0, len(raw))
	for _, p := range raw {
		if !(p.Weight > 0) || p.Value == nil || math.IsNaN(*p.Value) {
			continue
		}
		out = append(out, Point{Weight: p.Weight, Value: *p.Value})
	}
	return out
}

func validate(s Sample) error {
	for i, p := range s {
		switch {
		case math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0):
			return &errs.InvalidInputError{Index: i, Reason: "weight is not finite"}
		case p.Weight < 0:
			return &errs.InvalidInputError{Index: i, Reason: "weight is negative"}
		case math.IsNaN(p.Value) || math.IsInf(p.Value, 0):
			return &errs.InvalidInputError{Index: i, Reason: "value is not finite"}
		}
	}
	return nil
}

func totalWeight(s Sample) float64 {
	w := 0.0
	for _, p := range s {
		w += p.Weight
	}
	return w
}

// WeightedAverage is sum(weight*value) / sum(weight).
func WeightedAverage(s Sample) (float64, error) {
	if err := validate(s); err != nil {
		return math.NaN(), err
	}
	var num, den float64
	for _, p := range s {
		num += p.Weight * p.Value
		den += p.Weight
	}
	if den == 0 {
		return math.NaN(), nil
	}
	return num / den, nil
}

// WeightedMedian sorts by value and returns the first value at which the cumulative weight
// reaches half the total. An exact landing on the half-point returns that value.
func WeightedMedian(s Sample) (float64, error) {
	if err := validate(s); err != nil {
		return math.NaN(), err
	}
	total := totalWeight(s)
	if len(s) == 0 || total == 0 {
		return math.NaN(), nil
	}
	sorted := make(Sample, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	half := total / 2
	cum := 0.0
	for _, p := range sorted {
		cum += p.Weight
		if cum >= half {
			return p.Value, nil
		}
	}
	// unreachable for positive totals; guards against rounding in cum
	return sorted[len(sorted)-1].Value, nil
}

// WeightedStdDev is the population form sqrt(sum(weight*(value-mean)^2) / sum(weight)).
func WeightedStdDev(s Sample, mean float64) (float64, error) {
	if err := validate(s); err != nil {
		return math.NaN(), err
	}
	var num, den float64
	for _, p := range s {
		d := p.Value - mean
		num += p.Weight * d * d
		den += p.Weight
	}
	if den == 0 {
		return math.NaN(), nil
	}
	return math.Sqrt(num / den), nil
}

// Summary bundles the statistics shown for one group.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
	Count  int
	// Sum is Count * Mean.
	Sum float64
}

// Summarize computes every statistic of a cleaned sample. Count is the number of points.
func Summarize(s Sample) (Summary, error) {
	mean, err := WeightedAverage(s)
	if err != nil {
		return Summary{}, err
	}
	median, err := WeightedMedian(s)
	if err != nil {
		return Summary{}, err
	}
	std, err := WeightedStdDev(s, mean)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Mean:   mean,
		Median: median,
		StdDev: std,
		Count:  len(s),
		Sum:    float64(len(s)) * mean,
	}, nil
}

// Round rounds v to the given number of decimal places. Non-finite values pass through.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
