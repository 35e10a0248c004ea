package io

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/paveg/medalprep/internal/table"
)

// Read reads one worksheet and returns a Sheet. Cells are read as their raw
// stored values so numbers are not re-rendered through a display format.
func (r *XLSXReader) Read() (*Sheet, error) {
	f, err := excelize.OpenReader(r.reader)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	name := r.options.SheetName
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", name, err)
	}

	return NewSheet(rows)
}

// Write writes the frame to a workbook with one sheet
func (w *XLSXWriter) Write(f table.Frame) error {
	fx := excelize.NewFile()
	defer fx.Close()

	name := w.options.SheetName
	if name == "" {
		name = DefaultSheetName
	}
	if name != DefaultSheetName {
		if err := fx.SetSheetName(DefaultSheetName, name); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}

	sw, err := fx.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	columns := table.Columns(f)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}

	for i := range f.Len() {
		row := make([]any, len(columns))
		for j := range columns {
			row[j] = cellValue(f.Value(i, j))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	return fx.Write(w.writer)
}

func cellValue(v any) any {
	if fv, ok := v.(table.Float); ok {
		if !fv.Valid {
			return nil
		}
		return fv.Value
	}
	return v
}
