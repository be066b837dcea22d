package export

import (
	"fmt"
	"io"
	"strings"
)

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

func writeMarkdown(w io.Writer, doc Document, opt Options) error {
	titles, cells := rendered(doc.Table)
	var b strings.Builder
	if !opt.Plain {
		if doc.Title != "" {
			b.WriteString(fmt.Sprintf("## %s\n\n", doc.Title))
		}
		for _, n := range doc.Notes {
			b.WriteString("- " + n + "\n")
		}
		if len(doc.Notes) > 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("| ")
	for i, t := range titles {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(t))
	}
	b.WriteString(" |\n|")
	for i := range titles {
		if i == 0 {
			b.WriteString(" --- |")
		} else {
			b.WriteString(" ---: |")
		}
	}
	b.WriteString("\n")
	for _, row := range cells {
		b.WriteString("| ")
		for i, v := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(v))
		}
		b.WriteString(" |\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
