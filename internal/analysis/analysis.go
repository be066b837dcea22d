package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
	"github.com/KaramelBytes/cubeloom-cli/internal/grouping"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

// Weighting selects how much each card counts.
type Weighting string

const (
	// WeightCount counts every card once.
	WeightCount Weighting = "count"
	// WeightAsfan weights a card by its expected copies per draft.
	WeightAsfan Weighting = "asfan"
)

// ParseWeighting accepts "count" or "asfan". Empty means count.
func ParseWeighting(s string) (Weighting, error) {
	switch Weighting(strings.ToLower(strings.TrimSpace(s))) {
	case "", WeightCount:
		return WeightCount, nil
	case WeightAsfan:
		return WeightAsfan, nil
	}
	return "", errs.Config("weighting", fmt.Sprintf("unknown %q (want count or asfan)", s))
}

// Options controls report behavior.
type Options struct {
	// Name labels the report, usually the cube file name.
	Name      string
	Weighting Weighting
	// PercentOf selects the percent annotation of cross-tab cells.
	PercentOf table.PercentOf
	// Places is the number of decimals statistics are rounded to for display.
	Places int
}

// DefaultOptions returns count weighting, percent of total and two decimals.
func DefaultOptions() Options {
	return Options{Weighting: WeightCount, PercentOf: table.PercentTotal, Places: 2}
}

func (o Options) weight() grouping.WeightFunc {
	if o.Weighting == WeightAsfan {
		return grouping.Asfan
	}
	return grouping.One
}

func weightOf(o Options, c *card.Card) float64 { return o.weight()(c) }
