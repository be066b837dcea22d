package deck

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

// Columns is the number of mana value columns; the last one holds 7 and above.
const Columns = 8

// Piles is a two-row grid: row 0 holds creatures, row 1 everything else.
type Piles [2][Columns][]*card.Card

// RowNames label the two pile rows.
var RowNames = [2]string{"Creatures", "Non-creatures"}

// ManaValueColumn rounds the mana value to a half-integer, takes the ceiling, and clamps
// the result to [0, 7]. Half mana values such as 0.5 land in the column above.
func ManaValueColumn(c *card.Card) int {
	mv := c.ManaValue
	if math.IsNaN(mv) {
		mv = 0
	}
	mv = math.Max(-1, math.Min(mv, Columns))
	doubled := int(math.Floor(mv*2 + 0.5))
	col := (doubled + doubled%2) / 2
	if col < 0 {
		return 0
	}
	if col > Columns-1 {
		return Columns - 1
	}
	return col
}

// SortPiles places each card in its pile, preserving deck order within a pile.
func SortPiles(cards []*card.Card) Piles {
	var p Piles
	for _, c := range cards {
		if c == nil {
			continue
		}
		row := 1
		if c.IsCreature() {
			row = 0
		}
		col := ManaValueColumn(c)
		p[row][col] = append(p[row][col], c)
	}
	return p
}

// ColumnLabel names a pile column: "0" through "6", then "7+".
func ColumnLabel(col int) string {
	if col == Columns-1 {
		return fmt.Sprintf("%d+", col)
	}
	return fmt.Sprint(col)
}

// Table summarizes the piles as card counts, one row per pile row. With names, each count
// is annotated with the names of the cards in the pile; exports keep the plain counts.
func (p Piles) Table(names bool) (*table.Table, error) {
	var render table.RenderFunc
	if names {
		render = p.namesRenderer()
	}
	cols := []table.ColumnSpec{{Key: "pile", Title: "Pile", Heading: true}}
	for c := 0; c < Columns; c++ {
		cols = append(cols, table.ColumnSpec{Key: ColumnLabel(c), Title: ColumnLabel(c), Sortable: true, Render: render})
	}
	cols = append(cols, table.ColumnSpec{Key: "total", Title: "Total", Sortable: true})

	rows := make([]table.Row, 0, len(p))
	for r := range p {
		row := table.Row{"pile": RowNames[r]}
		total := 0
		for c := 0; c < Columns; c++ {
			n := len(p[r][c])
			total += n
			row[ColumnLabel(c)] = n
		}
		row["total"] = total
		rows = append(rows, row)
	}
	return table.New(rows, cols)
}

func (p Piles) namesRenderer() table.RenderFunc {
	return func(value any, row table.Row, key string) table.Cell {
		cell := table.Cell{Text: table.FormatValue(value)}
		r := 1
		if row["pile"] == RowNames[0] {
			r = 0
		}
		for c := 0; c < Columns; c++ {
			if ColumnLabel(c) != key {
				continue
			}
			names := make([]string, len(p[r][c]))
			for i, cd := range p[r][c] {
				names[i] = cd.Name
			}
			cell.Annotation = strings.Join(names, ", ")
		}
		return cell
	}
}
