// Package io reads pipeline sources and writes pipeline outputs.
//
// Sources are CSV (optionally with a UTF-8 byte order mark) or XLSX files and
// are read into a Sheet: a trimmed header row plus raw string records. Outputs
// are any table.Frame, written as CSV, JSON, Parquet or XLSX depending on the
// destination's extension.
//
// Key components:
//   - DataReader/DataWriter interfaces for pluggable backends
//   - CSVReader/CSVWriter, XLSXReader/XLSXWriter
//   - JSONWriter and ParquetWriter for typed outputs
//   - ReadMedals, ReadHosts and ReadWide for the pipeline's source files
package io

import (
	"io"

	"github.com/paveg/medalprep/internal/table"
)

const (
	// DefaultBatchSize is the default row group batch size for Parquet output
	DefaultBatchSize = 1000
	// DefaultSheetName is the worksheet written to and preferred when reading XLSX
	DefaultSheetName = "Sheet1"
)

// DataReader defines the interface for reading a source into a Sheet
type DataReader interface {
	// Read reads the whole source
	Read() (*Sheet, error)
}

// DataWriter defines the interface for writing a frame to a destination
type DataWriter interface {
	// Write writes every row of the frame
	Write(f table.Frame) error
}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
}

// DefaultCSVOptions returns default CSV options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter: ',',
	}
}

// CSVReader reads CSV data into a Sheet
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions) *CSVReader {
	return &CSVReader{
		reader:  reader,
		options: options,
	}
}

// CSVWriter writes frames to CSV format
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{
		writer:  writer,
		options: options,
	}
}

// ParquetOptions contains configuration options for Parquet operations
type ParquetOptions struct {
	// Compression type for Parquet files
	Compression string
	// BatchSize is the maximum number of rows per row group
	BatchSize int
}

// DefaultParquetOptions returns default Parquet options
func DefaultParquetOptions() ParquetOptions {
	return ParquetOptions{
		Compression: "snappy",
		BatchSize:   DefaultBatchSize,
	}
}

// ParquetWriter writes frames to Parquet format
type ParquetWriter struct {
	writer  io.Writer
	options ParquetOptions
}

// NewParquetWriter creates a new Parquet writer with the specified options
func NewParquetWriter(writer io.Writer, options ParquetOptions) *ParquetWriter {
	return &ParquetWriter{
		writer:  writer,
		options: options,
	}
}

// JSONFormat specifies the JSON output layout
type JSONFormat int

const (
	// JSONArray writes a single array of objects
	JSONArray JSONFormat = iota
	// JSONLines writes one object per line
	JSONLines
)

// JSONOptions contains configuration options for JSON operations
type JSONOptions struct {
	Format JSONFormat
}

// DefaultJSONOptions returns default JSON options
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{Format: JSONArray}
}

// JSONWriter writes frames as JSON objects with keys in column order
type JSONWriter struct {
	writer  io.Writer
	options JSONOptions
}

// NewJSONWriter creates a new JSON writer with the specified options
func NewJSONWriter(writer io.Writer, options JSONOptions) *JSONWriter {
	return &JSONWriter{
		writer:  writer,
		options: options,
	}
}

// XLSXOptions contains configuration options for XLSX operations
type XLSXOptions struct {
	// SheetName selects the worksheet. When reading, an empty name means the
	// first sheet of the workbook.
	SheetName string
}

// DefaultXLSXOptions returns default XLSX options
func DefaultXLSXOptions() XLSXOptions {
	return XLSXOptions{SheetName: DefaultSheetName}
}

// XLSXReader reads the rows of one worksheet into a Sheet
type XLSXReader struct {
	reader  io.Reader
	options XLSXOptions
}

// NewXLSXReader creates a new XLSX reader with the specified options
func NewXLSXReader(reader io.Reader, options XLSXOptions) *XLSXReader {
	return &XLSXReader{
		reader:  reader,
		options: options,
	}
}

// XLSXWriter writes frames to a single-sheet workbook
type XLSXWriter struct {
	writer  io.Writer
	options XLSXOptions
}

// NewXLSXWriter creates a new XLSX writer with the specified options
func NewXLSXWriter(writer io.Writer, options XLSXOptions) *XLSXWriter {
	return &XLSXWriter{
		writer:  writer,
		options: options,
	}
}
