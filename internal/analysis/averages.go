package analysis

import (
	"fmt"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/characteristic"
	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
	"github.com/KaramelBytes/cubeloom-cli/internal/grouping"
	"github.com/KaramelBytes/cubeloom-cli/internal/stats"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

// manaValueField is the field whose averages leave lands out, since a 0 mana value is
// otherwise indistinguishable from a land.
const manaValueField = "Mana Value"

// AverageRow is the statistics of one group.
type AverageRow struct {
	Label  string
	Mean   float64
	Median float64
	StdDev float64
	Count  int
	Sum    float64
}

// AveragesReport holds per-group statistics of one numeric field.
type AveragesReport struct {
	Name      string
	GroupBy   string
	Field     string
	Weighting Weighting
	Cards     int
	Rows      []AverageRow
	// Skipped counts cards left out of every sample: lands for Mana Value, missing values,
	// or a zero weight.
	Skipped  int
	Warnings []string
}

// Averages groups cards by `by` and summarizes `field` in each group. Groups without any
// usable value are dropped.
func Averages(cards []*card.Card, by, field characteristic.Characteristic, opt Options) (*AveragesReport, error) {
	if field == nil {
		return nil, errs.Config("field", "a numeric field is required")
	}
	buckets, err := grouping.GroupByCriterion(cards, by)
	if err != nil {
		return nil, err
	}
	rep := &AveragesReport{
		Name:      opt.Name,
		GroupBy:   by.Name(),
		Field:     field.Name(),
		Weighting: opt.Weighting,
		Cards:     len(cards),
	}
	used := map[*card.Card]bool{}
	for _, b := range buckets {
		raw := make([]stats.RawPoint, 0, len(b.Cards))
		for _, c := range b.Cards {
			if field.Name() == manaValueField && c.IsLand() {
				continue
			}
			p := stats.RawPoint{Weight: weightOf(opt, c)}
			if v, ok := field.Get(c); ok {
				p.Value = &v
				if p.Weight > 0 {
					used[c] = true
				}
			}
			raw = append(raw, p)
		}
		sample := stats.Clean(raw)
		if len(sample) == 0 {
			continue
		}
		sum, err := stats.Summarize(sample)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", b.Label, err)
		}
		rep.Rows = append(rep.Rows, AverageRow{
			Label:  b.Label,
			Mean:   stats.Round(sum.Mean, opt.Places),
			Median: stats.Round(sum.Median, opt.Places),
			StdDev: stats.Round(sum.StdDev, opt.Places),
			Count:  sum.Count,
			Sum:    stats.Round(sum.Sum, opt.Places),
		})
	}
	rep.Skipped = len(cards) - len(used)
	if len(rep.Rows) == 0 && len(cards) > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("no card has a usable %s value", field.Name()))
	}
	if opt.Weighting == WeightAsfan && rep.Skipped == len(cards) && len(cards) > 0 {
		rep.Warnings = append(rep.Warnings, "every card has a zero asfan; load asfans or use count weighting")
	}
	return rep, nil
}

// Title describes the report.
func (r *AveragesReport) Title() string {
	return fmt.Sprintf("Averages of %s by %s", r.Field, r.GroupBy)
}

// Notes lists the report's metadata lines.
func (r *AveragesReport) Notes() []string {
	notes := []string{}
	if r.Name != "" {
		notes = append(notes, "Cube: "+r.Name)
	}
	notes = append(notes,
		fmt.Sprintf("Cards: %d (skipped %d)", r.Cards, r.Skipped),
		"Weighting: "+string(r.Weighting),
	)
	return append(notes, r.Warnings...)
}

// Table converts the report to a sortable table keyed label, mean, median, stddev, count, sum.
func (r *AveragesReport) Table(opts ...table.Option) (*table.Table, error) {
	rows := make([]table.Row, len(r.Rows))
	for i, a := range r.Rows {
		rows[i] = table.Row{
			"label":  a.Label,
			"mean":   a.Mean,
			"median": a.Median,
			"stddev": a.StdDev,
			"count":  a.Count,
			"sum":    a.Sum,
		}
	}
	cols := []table.ColumnSpec{
		{Key: "label", Title: r.GroupBy, Heading: true, Sortable: true},
		{Key: "mean", Title: "Average (Mean)", Sortable: true},
		{Key: "median", Title: "Median", Sortable: true},
		{Key: "stddev", Title: "Standard Deviation", Sortable: true},
		{Key: "count", Title: "Count", Sortable: true},
		{Key: "sum", Title: "Sum", Sortable: true},
	}
	return table.New(rows, cols, append([]table.Option{table.WithCompare("label", table.CompareStrings)}, opts...)...)
}
