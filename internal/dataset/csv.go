// Package dataset provides header-driven access to the CSV files backing each KPI.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one data row read from a CSV file, keyed by header column name.
// Line is the 1-based physical line in the source file where the row starts,
// used as row identity in error reports. Blank lines and quoted fields that
// span lines do not shift it.
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column, or "" when the column is absent.
func (r Row) Get(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

// Has reports whether the column is present with a non-empty value.
func (r Row) Has(key string) bool {
	return r.Get(key) != ""
}

// Read reads header-driven CSV rows from r. The first record is the header;
// column order is irrelevant. Rows shorter than the header leave the trailing
// columns absent; extra cells are ignored.
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already names the offending line.
			return rows, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			fields[name] = record[i]
		}
		rows = append(rows, Row{Line: line, Fields: fields})
	}

	return rows, nil
}

// ReadFile reads all rows from a CSV file on disk.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}
