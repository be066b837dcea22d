package table

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

// Row maps a column key to its cell value: a number, a string, or an Exportable.
type Row map[string]any

// ColumnSpec describes one column. Heading columns identify the row.
type ColumnSpec struct {
	Key      string
	Title    string
	Sortable bool
	Heading  bool
	Tooltip  string
	Render   RenderFunc
}

// Direction of a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, errs.Config("sort direction", fmt.Sprintf("unknown %q", s))
}

// SortConfig selects the sort key and direction.
type SortConfig struct {
	Key       string
	Direction Direction
}

// CompareFunc orders two cell values; negative means a sorts first.
type CompareFunc func(a, b any) int

// Table is a set of rows with column descriptors and one active sort.
type Table struct {
	rows     []Row
	columns  []ColumnSpec
	compare  map[string]CompareFunc
	fallback *SortConfig
	active   *SortConfig
}

// Option configures a Table.
type Option func(*Table)

// WithDefaultSort sets the sort used until RequestSort is called.
func WithDefaultSort(cfg SortConfig) Option {
	return func(t *Table) { t.fallback = &cfg }
}

// WithCompare registers the comparator used for key when cells are not both numbers.
func WithCompare(key string, fn CompareFunc) Option {
	return func(t *Table) {
		if fn != nil {
			t.compare[key] = fn
		}
	}
}

// New validates the columns and builds a table. Rows are not copied.
func New(rows []Row, columns []ColumnSpec, opts ...Option) (*Table, error) {
	if len(columns) == 0 {
		return nil, errs.Config("columns", "at least one column is required")
	}
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c.Key) == "" {
			return nil, errs.Config("columns", fmt.Sprintf("column %d has an empty key", i))
		}
		if seen[c.Key] {
			return nil, errs.Config("columns", fmt.Sprintf("duplicate key %q", c.Key))
		}
		seen[c.Key] = true
	}
	t := &Table{rows: rows, columns: columns, compare: map[string]CompareFunc{}}
	for _, o := range opts {
		o(t)
	}
	return t, nil
}

// Rows returns the rows in input order.
func (t *Table) Rows() []Row { return t.rows }

// Columns returns the column descriptors.
func (t *Table) Columns() []ColumnSpec { return t.columns }

// SortConfig returns the active sort: the last requested one, else the default. ok is false
// when neither exists.
func (t *Table) SortConfig() (cfg SortConfig, ok bool) {
	switch {
	case t.active != nil:
		return *t.active, true
	case t.fallback != nil:
		return *t.fallback, true
	}
	return SortConfig{}, false
}

// RequestSort flips the direction when key is already active, otherwise sorts by key ascending.
func (t *Table) RequestSort(key string) {
	if cur, ok := t.SortConfig(); ok && cur.Key == key {
		next := Ascending
		if cur.Direction == Ascending {
			next = Descending
		}
		t.active = &SortConfig{Key: key, Direction: next}
		return
	}
	t.active = &SortConfig{Key: key, Direction: Ascending}
}

// SortedRows returns a stably sorted copy of the rows under the active sort.
// Cells that are both finite numbers compare numerically; other pairs use the key's registered
// comparator, or keep their input order when none is registered.
func (t *Table) SortedRows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	cfg, ok := t.SortConfig()
	if !ok {
		return out
	}
	cmp := t.compare[cfg.Key]
	sort.SliceStable(out, func(i, j int) bool {
		c := compareCells(out[i][cfg.Key], out[j][cfg.Key], cmp)
		if cfg.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Unsortable reports whether sorting by key would leave rows in input order because some cell
// is not a finite number and no comparator is registered for the key.
func (t *Table) Unsortable(key string) bool {
	if _, ok := t.compare[key]; ok {
		return false
	}
	for _, r := range t.rows {
		if _, ok := finiteNumber(r[key]); !ok {
			return true
		}
	}
	return false
}

func compareCells(a, b any, fn CompareFunc) int {
	x, okA := finiteNumber(a)
	y, okB := finiteNumber(b)
	if okA && okB {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	if fn != nil {
		return fn(a, b)
	}
	return 0
}

// number converts Go numeric kinds to float64.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func finiteNumber(v any) (float64, bool) {
	n, ok := number(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
