package harvest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// DefaultReportPath is where ExportReport writes the report table.
const DefaultReportPath = "harvest.csv"

// WriteCSV serializes rows as comma-delimited text, one row per line, cells
// rendered by CellString. Column counts and blank cells are preserved
// exactly; consumers key off position.
func WriteCSV(w io.Writer, rows [][]Cell) error {
	cw := csv.NewWriter(w)
	record := make([]string, 0, len(ReportHeader))
	for _, row := range rows {
		record = record[:0]
		for _, c := range row {
			record = append(record, CellString(c))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportReport writes rows to DefaultReportPath and returns the path.
func ExportReport(rows [][]Cell) (string, error) {
	f, err := os.Create(DefaultReportPath)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return "", fmt.Errorf("writing report file %s: %w", DefaultReportPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing report file %s: %w", DefaultReportPath, err)
	}
	return DefaultReportPath, nil
}
