package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by the xlsx format.
const SheetName = "Export"

func writeXLSX(w io.Writer, doc Document) error {
	recs := doc.Table.Export()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, h := range recs.Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	if len(recs.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(recs.Header), 1)
		if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}
	for r, rec := range recs.Records {
		for c, v := range rec {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			// numbers stay numeric so spreadsheets can sort and sum them
			if n, err := strconv.ParseFloat(v, 64); err == nil && v != "" {
				err = f.SetCellFloat(SheetName, cell, n, -1, 64)
				if err != nil {
					return fmt.Errorf("set %s: %w", cell, err)
				}
				continue
			}
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
