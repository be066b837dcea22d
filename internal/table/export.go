package table

import "sort"

// DefaultExportName is the file name used when an export has no explicit name.
const DefaultExportName = "export.csv"

// Exportable is a cell value that carries its own plain-text export form.
type Exportable interface {
	ExportValue() string
}

// ToExportRows replaces every Exportable cell with its export value; other cells pass through.
func ToExportRows(rows []Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		m := make(map[string]any, len(r))
		for k, v := range r {
			if e, ok := v.(Exportable); ok {
				m[k] = e.ExportValue()
				continue
			}
			m[k] = v
		}
		out[i] = m
	}
	return out
}

// Records is a flat, header-first form of a table ready for serialization.
type Records struct {
	Header  []string
	Records [][]string
}

// Export flattens the rows in their current sorted order. The header lists the column keys in
// column order followed by any other keys found in the rows, sorted by name. Cells are formatted
// with FormatValue; missing cells are empty.
func (t *Table) Export() Records {
	rows := ToExportRows(t.SortedRows())
	header := make([]string, 0, len(t.columns))
	known := map[string]bool{}
	for _, c := range t.columns {
		header = append(header, c.Key)
		known[c.Key] = true
	}
	var extra []string
	for _, r := range rows {
		for k := range r {
			if !known[k] {
				known[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	header = append(header, extra...)

	recs := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(header))
		for j, k := range header {
			if v, ok := r[k]; ok {
				line[j] = FormatValue(v)
			}
		}
		recs[i] = line
	}
	return Records{Header: header, Records: recs}
}

// Titles maps the header keys to column titles where one exists.
func (t *Table) Titles(header []string) []string {
	titles := map[string]string{}
	for _, c := range t.columns {
		if c.Title != "" {
			titles[c.Key] = c.Title
		}
	}
	out := make([]string, len(header))
	for i, k := range header {
		if title, ok := titles[k]; ok {
			out[i] = title
		} else {
			out[i] = k
		}
	}
	return out
}
