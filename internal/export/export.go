package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
	"github.com/KaramelBytes/cubeloom-cli/internal/utils"
)

// Format represents the export format.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatChart    Format = "chart"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatCSV, FormatJSON, FormatXLSX, FormatMarkdown, FormatChart}

// ParseFormat accepts a format name; "markdown", "txt" and "html" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "table":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "chart", "html":
		return FormatChart, nil
	}
	return "", errs.Config("format", fmt.Sprintf("unsupported export format %q", s))
}

// FormatForPath infers a format from a file extension. ok is false for unknown extensions.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".json":
		return FormatJSON, true
	case ".xlsx":
		return FormatXLSX, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".html", ".htm":
		return FormatChart, true
	case ".txt":
		return FormatText, true
	}
	return "", false
}

// Ext is the file extension, with dot, for a format.
func (f Format) Ext() string {
	switch f {
	case FormatChart:
		return ".html"
	case FormatText:
		return ".txt"
	}
	return "." + string(f)
}

// Document is a table plus the title and notes printed around it.
type Document struct {
	Title string
	Notes []string
	Table *table.Table
}

// Options holds configuration for export operations.
type Options struct {
	Format Format
	// ChartColumn is the column plotted by the chart format; empty picks the first non-heading column.
	ChartColumn string
	// Plain drops the title and notes from text and Markdown output.
	Plain bool
}

// Write renders doc to w.
func Write(w io.Writer, doc Document, opt Options) error {
	if doc.Table == nil {
		return errs.Config("export", "no table to export")
	}
	switch opt.Format {
	case FormatText, "":
		return writeText(w, doc, opt)
	case FormatCSV:
		return writeCSV(w, doc.Table.Export())
	case FormatJSON:
		return writeJSON(w, doc.Table.Export())
	case FormatXLSX:
		return writeXLSX(w, doc)
	case FormatMarkdown:
		return writeMarkdown(w, doc, opt)
	case FormatChart:
		return writeChart(w, doc, opt)
	default:
		return errs.Config("format", fmt.Sprintf("unsupported export format %q", opt.Format))
	}
}

// WriteFile renders doc and atomically writes it to path.
func WriteFile(path string, doc Document, opt Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opt); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// cellText joins a rendered cell and its annotation for human-facing formats.
func cellText(c table.Cell) string {
	if c.Annotation == "" {
		return c.Text
	}
	return c.Text + " (" + c.Annotation + ")"
}

// rendered returns the column titles and the rendered cells of the sorted rows.
func rendered(t *table.Table) ([]string, [][]string) {
	cols := t.Columns()
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
		if titles[i] == "" {
			titles[i] = c.Key
		}
	}
	rows := t.SortedRows()
	cells := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(cols))
		for j, c := range cols {
			line[j] = cellText(table.RenderCell(r, c))
		}
		cells[i] = line
	}
	return titles, cells
}
