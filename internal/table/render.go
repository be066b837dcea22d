package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

// Cell is a rendered value plus an optional annotation such as "44.44%".
type Cell struct {
	Text       string
	Annotation string
}

// RenderFunc renders the value of column key in row.
type RenderFunc func(value any, row Row, key string) Cell

// FormatValue renders integers unchanged and other finite numbers with two decimals.
// Non-finite numbers and non-numeric values use their default formatting; nil is empty.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Exportable:
		return x.ExportValue()
	}
	n, ok := number(v)
	if !ok {
		return fmt.Sprint(v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Sprint(n)
	}
	if n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', 2, 64)
}

// RenderCell renders a row's cell through the column's RenderFunc or FormatValue.
func RenderCell(row Row, col ColumnSpec) Cell {
	if col.Render != nil {
		return col.Render(row[col.Key], row, col.Key)
	}
	return Cell{Text: FormatValue(row[col.Key])}
}

// PercentOf selects the denominator of the percent annotation.
type PercentOf string

const (
	PercentTotal  PercentOf = "total"
	PercentRow    PercentOf = "row"
	PercentColumn PercentOf = "column"
	PercentNone   PercentOf = "none"
)

// PercentModes lists the accepted PercentOf values.
var PercentModes = []PercentOf{PercentTotal, PercentRow, PercentColumn, PercentNone}

// ParsePercentOf accepts a mode name case-insensitively. Empty means total.
func ParsePercentOf(s string) (PercentOf, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PercentTotal, nil
	}
	for _, m := range PercentModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errs.Config("percent-of", fmt.Sprintf("unknown mode %q (want total, row, column or none)", s))
}

// PercentRenderer renders a count with a percent annotation. columnTotals maps each column
// key to its total and must hold totalKey for the grand total; the row total is read from the
// row's totalKey cell. Non-finite values render as 0. A zero or missing denominator, or mode
// none, leaves the annotation empty.
func PercentRenderer(mode PercentOf, columnTotals map[string]float64, totalKey string) RenderFunc {
	return func(value any, row Row, key string) Cell {
		v, ok := finiteNumber(value)
		if !ok {
			v = 0
		}
		cell := Cell{Text: FormatValue(v)}
		var den float64
		switch mode {
		case PercentTotal:
			den = columnTotals[totalKey]
		case PercentRow:
			den, _ = finiteNumber(row[totalKey])
		case PercentColumn:
			den = columnTotals[key]
		default:
			return cell
		}
		if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
			return cell
		}
		cell.Annotation = FormatValue(v*100/den) + "%"
		return cell
	}
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// CompareStrings orders the string forms of two cells with English collation.
func CompareStrings(a, b any) int {
	sa, sb := FormatValue(a), FormatValue(b)
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(sa, sb)
}
