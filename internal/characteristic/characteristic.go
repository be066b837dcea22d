package characteristic

import (
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// Characteristic is a named accessor and classifier over cards.
//
// Labels must return exactly the labels that at least one card in the input satisfies
// under CardIsLabel, in display order. Fixed-domain characteristics document otherwise.
type Characteristic interface {
	Name() string
	Get(c *card.Card) (float64, bool)
	Labels(cards []*card.Card) []string
	CardIsLabel(c *card.Card, label string) bool
}

// labeler maps a value to a bucket. key orders buckets; label names them.
type labeler interface {
	bucket(v float64) (key float64, label string)
}

// exact gives every distinct value its own bucket.
type exact struct{}

func (exact) bucket(v float64) (float64, string) { return v, FormatNumber(v) }

// stepped buckets values into fixed-width integer ranges, e.g. Elo 1200-1249.
type stepped struct{ width float64 }

func (s stepped) bucket(v float64) (float64, string) {
	lo := math.Floor(v/s.width) * s.width
	return lo, FormatNumber(lo) + "-" + FormatNumber(lo+s.width-1)
}

// edges buckets values by ascending boundaries; below the first edge and at or above the
// last edge get open-ended buckets.
type edges struct {
	bounds []float64
	prefix string
}

func (e edges) bucket(v float64) (float64, string) {
	if len(e.bounds) == 0 || v < e.bounds[0] {
		return math.Inf(-1), "< " + e.money(e.first())
	}
	for i := 1; i < len(e.bounds); i++ {
		if v < e.bounds[i] {
			return e.bounds[i-1], e.money(e.bounds[i-1]) + " - " + e.money(e.bounds[i])
		}
	}
	last := e.bounds[len(e.bounds)-1]
	return last, e.money(last) + "+"
}

func (e edges) first() float64 {
	if len(e.bounds) == 0 {
		return 0
	}
	return e.bounds[0]
}

func (e edges) money(v float64) string {
	return e.prefix + strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatNumber renders integers without a fraction and other values in shortest form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numericLabels collects the labels of every card that has a value, ordered by bucket key.
func numericLabels(cards []*card.Card, get func(*card.Card) (float64, bool), lb labeler) []string {
	seen := map[string]float64{}
	for _, c := range cards {
		v, ok := get(c)
		if !ok {
			continue
		}
		key, label := lb.bucket(v)
		seen[label] = key
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if seen[labels[i]] == seen[labels[j]] {
			return labels[i] < labels[j]
		}
		return seen[labels[i]] < seen[labels[j]]
	})
	return labels
}

func numericIsLabel(c *card.Card, label string, get func(*card.Card) (float64, bool), lb labeler) bool {
	v, ok := get(c)
	if !ok {
		return false
	}
	_, l := lb.bucket(v)
	return l == label
}

// finite drops NaN and infinities, which behave like missing values.
func finite(v float64, ok bool) (float64, bool) {
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
