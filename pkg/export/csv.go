package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

// encodeCSV writes a header row of the report's column names followed by one
// delimited line per row, UTF-8 encoded.
func encodeCSV(report domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(report.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(report.Columns))
	for _, row := range report.Rows {
		for i, col := range report.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
