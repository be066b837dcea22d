package parser

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// txtLoader reads one card name per line. Blank lines and lines starting with '#' are skipped.
type txtLoader struct{}

func (txtLoader) CanParse(filename string) bool { return hasExt(filename, ".txt") }

func (txtLoader) Parse(content []byte) ([]*card.Card, error) {
	var out []*card.Card
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, &card.Card{Name: line, ColorIdentity: []string{}, Colors: []string{}})
	}
	return out, sc.Err()
}
