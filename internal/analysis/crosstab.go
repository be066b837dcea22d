package analysis

import (
	"fmt"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/characteristic"
	"github.com/KaramelBytes/cubeloom-cli/internal/grouping"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

// RowLabelKey is the key of the heading column of a cross-tab.
const RowLabelKey = "rowLabel"

// CrossTabReport counts cards for every pair of row and column labels.
type CrossTabReport struct {
	Name      string
	Rows      string
	Columns   string
	Weighting Weighting
	PercentOf table.PercentOf
	// Cards is the number of cards both criteria could place.
	Cards int
	// Dropped counts cards that one of the criteria could not place.
	Dropped int
	// ColumnLabels are the kept column labels, ending with grouping.TotalLabel.
	ColumnLabels []string
	// ColumnKeys are the record keys of ColumnLabels, position for position. A key equals its
	// label unless the label is reserved or repeated.
	ColumnKeys []string
	// ColumnTotals maps each column key to its weighted count.
	ColumnTotals map[string]float64
	Records      []table.Row
}

// CrossTab keeps the cards both criteria can place, then counts them per row and column label.
// Column labels with a zero total are dropped; a Total column and a Total row close the grid.
func CrossTab(cards []*card.Card, rowCrit, colCrit characteristic.Characteristic, opt Options) (*CrossTabReport, error) {
	kept, err := grouping.Sortable(cards, colCrit, rowCrit)
	if err != nil {
		return nil, err
	}
	weight := opt.weight()

	colBuckets, err := grouping.GroupWithTotal(kept, colCrit)
	if err != nil {
		return nil, err
	}
	rep := &CrossTabReport{
		Name:         opt.Name,
		Rows:         rowCrit.Name(),
		Columns:      colCrit.Name(),
		Weighting:    opt.Weighting,
		PercentOf:    opt.PercentOf,
		Cards:        len(kept),
		Dropped:      len(cards) - len(kept),
		ColumnTotals: map[string]float64{},
	}
	var members []map[*card.Card]bool
	keys := newColumnKeys()
	last := len(colBuckets) - 1
	for i, b := range colBuckets {
		total := grouping.WeightedSum(b.Cards, weight)
		if i != last && total <= 0 {
			continue
		}
		key := grouping.TotalLabel
		if i != last {
			key = keys.next(b.Label)
		}
		set := make(map[*card.Card]bool, len(b.Cards))
		for _, c := range b.Cards {
			set[c] = true
		}
		members = append(members, set)
		rep.ColumnLabels = append(rep.ColumnLabels, b.Label)
		rep.ColumnKeys = append(rep.ColumnKeys, key)
		rep.ColumnTotals[key] = total
	}

	rowBuckets, err := grouping.GroupWithTotal(kept, rowCrit)
	if err != nil {
		return nil, err
	}
	for _, rb := range rowBuckets {
		row := table.Row{RowLabelKey: rb.Label}
		for j, key := range rep.ColumnKeys {
			var in []*card.Card
			for _, c := range rb.Cards {
				if members[j][c] {
					in = append(in, c)
				}
			}
			row[key] = grouping.WeightedSum(in, weight)
		}
		rep.Records = append(rep.Records, row)
	}
	return rep, nil
}

// columnKeys hands out record keys that never collide with the heading key, the Total column
// or each other. Colliding labels get a " (2)", " (3)", ... suffix.
type columnKeys map[string]bool

func newColumnKeys() columnKeys {
	return columnKeys{RowLabelKey: true, grouping.TotalLabel: true}
}

func (k columnKeys) next(label string) string {
	key := label
	for n := 2; k[key]; n++ {
		key = fmt.Sprintf("%s (%d)", label, n)
	}
	k[key] = true
	return key
}

// Title describes the report.
func (r *CrossTabReport) Title() string {
	return fmt.Sprintf("%s by %s", r.Rows, r.Columns)
}

// Notes lists the report's metadata lines.
func (r *CrossTabReport) Notes() []string {
	notes := []string{}
	if r.Name != "" {
		notes = append(notes, "Cube: "+r.Name)
	}
	notes = append(notes,
		fmt.Sprintf("Cards: %d (dropped %d)", r.Cards, r.Dropped),
		"Weighting: "+string(r.Weighting),
		"Percent of: "+string(r.PercentOf),
	)
	return notes
}

// Table converts the report to a sortable table whose count cells carry percent annotations.
func (r *CrossTabReport) Table(opts ...table.Option) (*table.Table, error) {
	render := table.PercentRenderer(r.PercentOf, r.ColumnTotals, grouping.TotalLabel)
	cols := []table.ColumnSpec{{Key: RowLabelKey, Title: r.Rows, Heading: true, Sortable: true}}
	for i, l := range r.ColumnLabels {
		cols = append(cols, table.ColumnSpec{Key: r.ColumnKeys[i], Title: l, Sortable: true, Render: render})
	}
	return table.New(r.Records, cols, append([]table.Option{table.WithCompare(RowLabelKey, table.CompareStrings)}, opts...)...)
}
