package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/cubeloom-cli/internal/card"
)

// xlsxLoader reads the sheet named Sheet, or the first sheet when Sheet is empty.
type xlsxLoader struct {
	Sheet string
}

func (xlsxLoader) CanParse(filename string) bool { return hasExt(filename, ".xlsx") }

func (l xlsxLoader) Parse(content []byte) ([]*card.Card, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return cardsFromRows(rows)
}

// LoadCubeSheet is LoadCube for a named sheet of an XLSX workbook. Other formats ignore sheet.
func LoadCubeSheet(path, sheet string) ([]*card.Card, error) {
	if sheet == "" || !hasExt(path, ".xlsx") {
		return LoadCube(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cards, err := xlsxLoader{Sheet: sheet}.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return normalize(cards), nil
}
