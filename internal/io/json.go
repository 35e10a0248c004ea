package io

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/paveg/medalprep/internal/table"
)

// Write writes the frame as JSON objects whose keys follow the schema order.
func (w *JSONWriter) Write(f table.Frame) error {
	switch w.options.Format {
	case JSONArray, JSONLines:
	default:
		return fmt.Errorf("unsupported JSON format: %d", w.options.Format)
	}

	keys, err := encodeKeys(table.Columns(f))
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w.writer)
	array := w.options.Format == JSONArray

	if array {
		bw.WriteByte('[')
	}
	for i := range f.Len() {
		if array && i > 0 {
			bw.WriteByte(',')
		}
		if err := writeObject(bw, keys, f, i); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
		if !array {
			bw.WriteByte('\n')
		}
	}
	if array {
		bw.WriteString("]\n")
	}

	return bw.Flush()
}

func encodeKeys(names []string) ([][]byte, error) {
	keys := make([][]byte, len(names))
	for i, name := range names {
		b, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("marshaling key %s: %w", name, err)
		}
		keys[i] = b
	}
	return keys, nil
}

func writeObject(bw *bufio.Writer, keys [][]byte, f table.Frame, row int) error {
	bw.WriteByte('{')
	for j, key := range keys {
		if j > 0 {
			bw.WriteByte(',')
		}
		bw.Write(key)
		bw.WriteByte(':')

		v := f.Value(row, j)
		if fv, ok := v.(table.Float); ok {
			if !fv.Valid {
				bw.WriteString("null")
				continue
			}
			v = fv.Value
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		bw.Write(data)
	}
	return bw.WriteByte('}')
}
