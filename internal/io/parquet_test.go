package io_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/paveg/medalprep/internal/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readParquet(t *testing.T, data []byte) arrow.Table {
	t.Helper()

	pqReader, err := file.NewParquetReader(bytes.NewReader(data))
	require.NoError(t, err)

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	require.NoError(t, err)

	tbl, err := arrowReader.ReadTable(context.Background())
	require.NoError(t, err)
	return tbl
}

func TestParquetWriter(t *testing.T) {
	compressions := []string{"snappy", "gzip", "zstd", "uncompressed"}

	for _, compression := range compressions {
		t.Run(compression, func(t *testing.T) {
			var buf bytes.Buffer
			opts := io.DefaultParquetOptions()
			opts.Compression = compression

			require.NoError(t, io.NewParquetWriter(&buf, opts).Write(sampleFrame()))

			tbl := readParquet(t, buf.Bytes())
			defer tbl.Release()

			require.Equal(t, int64(3), tbl.NumRows())
			require.Equal(t, int64(3), tbl.NumCols())

			schema := tbl.Schema()
			assert.Equal(t, "country_name", schema.Field(0).Name)
			assert.Equal(t, arrow.STRING, schema.Field(0).Type.ID())
			assert.Equal(t, arrow.INT64, schema.Field(1).Type.ID())
			assert.Equal(t, arrow.FLOAT64, schema.Field(2).Type.ID())

			names := tbl.Column(0).Data().Chunk(0).(*array.String)
			years := tbl.Column(1).Data().Chunk(0).(*array.Int64)
			gdp := tbl.Column(2).Data().Chunk(0).(*array.Float64)

			assert.Equal(t, "Côte d'Ivoire", names.Value(1))
			assert.Equal(t, int64(2008), years.Value(2))
			assert.InDelta(t, 2500.25, gdp.Value(1), 1e-9)
		})
	}
}

func TestParquetWriterRejectsMismatchedValue(t *testing.T) {
	frame := sampleFrame()
	frame.rows = [][]any{{"Kenya", "not a year", 1.0}}

	var buf bytes.Buffer
	err := io.NewParquetWriter(&buf, io.DefaultParquetOptions()).Write(frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column year")
}

// closeCounter is a sink that records Close calls.
type closeCounter struct {
	bytes.Buffer
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestParquetWriterLeavesSinkOpen(t *testing.T) {
	sink := &closeCounter{}

	require.NoError(t, io.NewParquetWriter(sink, io.DefaultParquetOptions()).Write(sampleFrame()))

	assert.Zero(t, sink.closed, "the caller owns the sink")
	tbl := readParquet(t, sink.Bytes())
	defer tbl.Release()
	assert.Equal(t, int64(3), tbl.NumRows())
}
