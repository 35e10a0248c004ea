package io_test

import (
	"github.com/paveg/medalprep/internal/table"
)

// sliceFrame is a table.Frame over literal rows.
type sliceFrame struct {
	fields []table.Field
	rows   [][]any
}

func (f sliceFrame) Schema() []table.Field { return f.fields }
func (f sliceFrame) Len() int              { return len(f.rows) }
func (f sliceFrame) Value(row, col int) any {
	return f.rows[row][col]
}

func sampleFrame() sliceFrame {
	return sliceFrame{
		fields: []table.Field{
			{Name: "country_name", Kind: table.KindString},
			{Name: "year", Kind: table.KindInt},
			{Name: "gdp_per_capita", Kind: table.KindFloat},
		},
		rows: [][]any{
			{"Kenya", int64(2000), 1.5},
			{"Côte d'Ivoire", int64(2004), 2500.25},
			{"Fiji, Republic of", int64(2008), float64(3000)},
		},
	}
}
