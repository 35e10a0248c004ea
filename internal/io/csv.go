package io

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/paveg/medalprep/internal/table"
)

// Read reads CSV data and returns a Sheet. A leading byte order mark is
// honoured and stripped.
func (r *CSVReader) Read() (*Sheet, error) {
	decoded := transform.NewReader(r.reader, unicode.BOMOverride(transform.Nop))

	csvReader := csv.NewReader(decoded)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	return NewSheet(records)
}

// Write writes the frame to CSV format
func (w *CSVWriter) Write(f table.Frame) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter

	if err := csvWriter.Write(table.Columns(f)); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}

	width := len(f.Schema())
	for i := range f.Len() {
		row := make([]string, width)
		for j := range width {
			row[j] = FormatValue(f.Value(i, j))
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// FormatValue renders a frame value as text. Integers print without a
// fractional part and floats in the shortest exact decimal form.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case table.Float:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
