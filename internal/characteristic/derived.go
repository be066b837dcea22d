package characteristic

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// CubeElo is the card's Elo within this cube's draft history, rounded to an integer.
// It groups into the same 50-point ranges as Elo.
type CubeElo struct {
	Index card.AnalyticsIndex
}

func (CubeElo) Name() string { return "Cube Elo" }

func (e CubeElo) Get(c *card.Card) (float64, bool) {
	a, ok := e.Index.Lookup(c)
	if !ok {
		return 0, false
	}
	return finite(math.Round(a.Elo), true)
}

func (e CubeElo) Labels(cards []*card.Card) []string {
	return numericLabels(cards, e.Get, stepped{width: 50})
}

func (e CubeElo) CardIsLabel(c *card.Card, label string) bool {
	return numericIsLabel(c, label, e.Get, stepped{width: 50})
}

// rateBuckets are the ten fixed deciles used by PickRate and MainboardRate.
var rateBuckets = func() []string {
	out := make([]string, 10)
	for i := range out {
		out[i] = fmt.Sprintf("%d%% - %d%%", i*10, (i+1)*10)
	}
	return out
}()

// rateLabel returns the decile of a rate in [0, 1]; 1 falls in the top decile.
func rateLabel(r float64) string {
	i := int(math.Floor(r * 10))
	if i < 0 {
		i = 0
	}
	if i > 9 {
		i = 9
	}
	return rateBuckets[i]
}

// PickRate is picks / (picks + passes). Labels are always the ten deciles,
// whether or not any card falls in them; cards never seen in a draft match none.
type PickRate struct {
	Index card.AnalyticsIndex
}

func (PickRate) Name() string { return "Pick Rate" }

func (p PickRate) Get(c *card.Card) (float64, bool) {
	a, ok := p.Index.Lookup(c)
	if !ok {
		return 0, false
	}
	return a.PickRate()
}

func (PickRate) Labels([]*card.Card) []string { return append([]string(nil), rateBuckets...) }

func (p PickRate) CardIsLabel(c *card.Card, label string) bool {
	r, ok := p.Get(c)
	return ok && rateLabel(r) == label
}

// MainboardRate is mainboards / (mainboards + sideboards), bucketed like PickRate.
type MainboardRate struct {
	Index card.AnalyticsIndex
}

func (MainboardRate) Name() string { return "Mainboard Rate" }

func (m MainboardRate) Get(c *card.Card) (float64, bool) {
	a, ok := m.Index.Lookup(c)
	if !ok {
		return 0, false
	}
	return a.MainboardRate()
}

func (MainboardRate) Labels([]*card.Card) []string { return append([]string(nil), rateBuckets...) }

func (m MainboardRate) CardIsLabel(c *card.Card, label string) bool {
	r, ok := m.Get(c)
	return ok && rateLabel(r) == label
}

// PickCount is the number of times the card was picked. Zero counts carry no label.
type PickCount struct {
	Index card.AnalyticsIndex
}

func (PickCount) Name() string { return "Pick Count" }

func (p PickCount) Get(c *card.Card) (float64, bool) {
	a, ok := p.Index.Lookup(c)
	if !ok {
		return 0, false
	}
	return float64(a.Picks), true
}

func (p PickCount) Labels(cards []*card.Card) []string {
	return numericLabels(cards, nonZero(p.Get), exact{})
}

func (p PickCount) CardIsLabel(c *card.Card, label string) bool {
	return numericIsLabel(c, label, nonZero(p.Get), exact{})
}

// MainboardCount is the number of decks that played the card. Zero counts carry no label.
type MainboardCount struct {
	Index card.AnalyticsIndex
}

func (MainboardCount) Name() string { return "Mainboard Count" }

func (m MainboardCount) Get(c *card.Card) (float64, bool) {
	a, ok := m.Index.Lookup(c)
	if !ok {
		return 0, false
	}
	return float64(a.Mainboards), true
}

func (m MainboardCount) Labels(cards []*card.Card) []string {
	return numericLabels(cards, nonZero(m.Get), exact{})
}

func (m MainboardCount) CardIsLabel(c *card.Card, label string) bool {
	return numericIsLabel(c, label, nonZero(m.Get), exact{})
}

func nonZero(get func(*card.Card) (float64, bool)) func(*card.Card) (float64, bool) {
	return func(c *card.Card) (float64, bool) {
		v, ok := get(c)
		return v, ok && v != 0
	}
}

// Derived returns the characteristics backed by the cube's draft analytics.
func Derived(idx card.AnalyticsIndex) []Characteristic {
	return []Characteristic{
		CubeElo{Index: idx},
		PickRate{Index: idx},
		PickCount{Index: idx},
		MainboardRate{Index: idx},
		MainboardCount{Index: idx},
	}
}
