package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

func writeCSV(w io.Writer, recs table.Records) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recs.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, r := range recs.Records {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeJSON emits an array of objects whose keys follow the header order.
func writeJSON(w io.Writer, recs table.Records) error {
	var b strings.Builder
	b.WriteString("[")
	for i, r := range recs.Records {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  {")
		for j, k := range recs.Header {
			if j > 0 {
				b.WriteString(", ")
			}
			key, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("failed to marshal JSON key: %w", err)
			}
			val, err := json.Marshal(r[j])
			if err != nil {
				return fmt.Errorf("failed to marshal JSON value: %w", err)
			}
			b.Write(key)
			b.WriteString(": ")
			b.Write(val)
		}
		b.WriteString("}")
	}
	if len(recs.Records) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	_, err := io.WriteString(w, b.String())
	return err
}
