package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// Loader defines a cube list format.
type Loader interface {
	CanParse(filename string) bool
	Parse(content []byte) ([]*card.Card, error)
}

var registry []Loader

// Register adds a loader to the registry. Later registrations are tried last.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(jsonLoader{})
	Register(csvLoader{})
	Register(xlsxLoader{})
	Register(txtLoader{})
}

// ErrUnsupported indicates a cube list format is not supported.
var ErrUnsupported = errors.New("unsupported cube list format")

// LoadCube reads a cube list, picking the loader by file name. Cards without an id get a
// fresh one.
func LoadCube(path string) ([]*card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	for _, l := range registry {
		if !l.CanParse(path) {
			continue
		}
		cards, err := l.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		return normalize(cards), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// normalize drops nameless entries and fills in missing ids.
func normalize(cards []*card.Card) []*card.Card {
	out := cards[:0]
	for _, c := range cards {
		if c == nil || strings.TrimSpace(c.Name) == "" {
			continue
		}
		c.Name = strings.TrimSpace(c.Name)
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		out = append(out, c)
	}
	return out
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
