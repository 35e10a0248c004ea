package io

import (
	"strings"

	"github.com/paveg/medalprep/internal/errors"
	"github.com/paveg/medalprep/internal/validation"
)

// Sheet is a header row plus raw string records.
type Sheet struct {
	Header  []string
	Records [][]string
	index   map[string]int
}

// NewSheet builds a sheet from rows whose first entry is the header. Header
// cells are trimmed; when a name repeats, the first column wins. Rows with no
// non-blank cell are dropped.
func NewSheet(rows [][]string) (*Sheet, error) {
	if len(rows) == 0 {
		return nil, errors.ErrMissingHeader
	}

	header := make([]string, len(rows[0]))
	index := make(map[string]int, len(header))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		header[i] = h
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	records := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		if err := validation.ValidateWidth(len(header), row, i+2, "NewSheet"); err != nil {
			return nil, err
		}
		records = append(records, row)
	}

	return &Sheet{Header: header, Records: records, index: index}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// HasColumn reports whether the header contains name.
func (s *Sheet) HasColumn(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Columns returns the header.
func (s *Sheet) Columns() []string {
	return s.Header
}

// Len returns the number of data records.
func (s *Sheet) Len() int {
	return len(s.Records)
}

// ColumnIndex returns the position of name in the header, or -1.
func (s *Sheet) ColumnIndex(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Cell returns the trimmed cell at (row, col); cells past the end of a short
// row are empty.
func (s *Sheet) Cell(row, col int) string {
	r := s.Records[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}
