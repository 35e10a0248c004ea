package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/paveg/medalprep/internal/errors"
	"github.com/paveg/medalprep/internal/table"
)

// SupportedOutputs lists the output extensions WriteFile understands.
var SupportedOutputs = []string{".csv", ".json", ".parquet", ".xlsx"}

// SupportedOutput reports whether path has a writable extension.
func SupportedOutput(path string) bool {
	return slices.Contains(SupportedOutputs, strings.ToLower(filepath.Ext(path)))
}

// NewWriterFor returns the writer matching the extension of path.
func NewWriterFor(path string, w io.Writer) (DataWriter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVWriter(w, DefaultCSVOptions()), nil
	case ".json":
		return NewJSONWriter(w, DefaultJSONOptions()), nil
	case ".parquet":
		return NewParquetWriter(w, DefaultParquetOptions()), nil
	case ".xlsx":
		return NewXLSXWriter(w, DefaultXLSXOptions()), nil
	default:
		return nil, errors.NewInvalidInputError("NewWriterFor",
			fmt.Sprintf("unsupported output extension %q", filepath.Ext(path)))
	}
}

// WriteFile writes the frame to path, creating parent directories as needed.
func WriteFile(path string, f table.Frame) (err error) {
	if !SupportedOutput(path) {
		_, err := NewWriterFor(path, nil)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewIOError("WriteFile", path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("WriteFile", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.NewIOError("WriteFile", path, closeErr)
		}
	}()

	writer, err := NewWriterFor(path, file)
	if err != nil {
		return err
	}
	if err := writer.Write(f); err != nil {
		return errors.NewIOError("WriteFile", path, err)
	}
	return nil
}
