package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

func writeText(w io.Writer, doc Document, opt Options) error {
	titles, cells := rendered(doc.Table)
	widths := make([]int, len(titles))
	for i, t := range titles {
		widths[i] = runewidth.StringWidth(t)
	}
	for _, row := range cells {
		for i, c := range row {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	if !opt.Plain {
		if doc.Title != "" {
			b.WriteString(doc.Title + "\n")
		}
		for _, n := range doc.Notes {
			b.WriteString("  " + n + "\n")
		}
		if doc.Title != "" || len(doc.Notes) > 0 {
			b.WriteString("\n")
		}
	}
	writeLine := func(vals []string, numeric bool) {
		for i, v := range vals {
			if i > 0 {
				b.WriteString("  ")
			}
			// right-align value columns, left-align the heading column
			if numeric && i > 0 {
				b.WriteString(runewidth.FillLeft(v, widths[i]))
			} else if i == len(vals)-1 {
				b.WriteString(v)
			} else {
				b.WriteString(runewidth.FillRight(v, widths[i]))
			}
		}
		b.WriteString("\n")
	}
	writeLine(titles, false)
	rule := make([]string, len(widths))
	for i, wd := range widths {
		rule[i] = strings.Repeat("-", wd)
	}
	writeLine(rule, false)
	for _, row := range cells {
		writeLine(row, true)
	}
	if len(cells) == 0 {
		b.WriteString("(no rows)\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
