package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// LoadAnalytics reads draft analytics: {"cards": [...]} or a bare array of entries.
func LoadAnalytics(path string) ([]*card.Analytic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analytics: %w", err)
	}
	data = bytes.TrimSpace(data)
	var list []*card.Analytic
	if bytes.HasPrefix(data, []byte("[")) {
		err = json.Unmarshal(data, &list)
	} else {
		var wrapped struct {
			Cards []*card.Analytic `json:"cards"`
		}
		err = json.Unmarshal(data, &wrapped)
		list = wrapped.Cards
	}
	if err != nil {
		return nil, fmt.Errorf("decode analytics: %w", err)
	}
	return list, nil
}

// LoadAsfans reads a JSON object mapping card ids or names to asfan values.
func LoadAsfans(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asfans: %w", err)
	}
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode asfans: %w", err)
	}
	for k, v := range m {
		if v < 0 {
			return nil, fmt.Errorf("asfan for %q is negative", k)
		}
	}
	return m, nil
}
