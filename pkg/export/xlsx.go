package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

const sheetName = "Report"

// encodeXLSX builds a single-sheet spreadsheet: the column names on row one,
// one row per report row below.
func encodeXLSX(report domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(report.Columns))
	for i, col := range report.Columns {
		header[i] = col
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, row := range report.Rows {
		values := make([]any, len(report.Columns))
		for j, col := range report.Columns {
			values[j] = row[col]
		}
		if err := setRow(f, i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
