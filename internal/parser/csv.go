package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

type csvLoader struct{}

func (csvLoader) CanParse(filename string) bool { return hasExt(filename, ".csv", ".tsv") }

func (csvLoader) Parse(content []byte) ([]*card.Card, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = sniffDelimiter(content)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return cardsFromRows(rows)
}

// sniffDelimiter picks the most frequent of ',', ';' and tab in the header line.
func sniffDelimiter(content []byte) rune {
	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	best, bestN := ',', bytes.Count(line, []byte(","))
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
