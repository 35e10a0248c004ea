package io

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/paveg/medalprep/internal/table"
)

// Write writes the frame to Parquet format.
func (w *ParquetWriter) Write(f table.Frame) error {
	mem := memory.NewGoAllocator()

	tbl, err := frameToArrowTable(f, mem)
	if err != nil {
		return fmt.Errorf("converting frame to Arrow table: %w", err)
	}
	defer tbl.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compressionCodec(w.options.Compression)),
		parquet.WithBatchSize(int64(w.batchSize())),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(mem))

	// pqarrow closes sinks that implement io.Closer; the caller owns w.writer.
	sink := struct{ io.Writer }{w.writer}
	writer, err := pqarrow.NewFileWriter(tbl.Schema(), sink, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating file writer: %w", err)
	}

	if err := writer.WriteTable(tbl, int64(w.batchSize())); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing table: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing file writer: %w", err)
	}
	return nil
}

func (w *ParquetWriter) batchSize() int {
	if w.options.BatchSize > 0 {
		return w.options.BatchSize
	}
	return DefaultBatchSize
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Codecs.Gzip
	case "lz4":
		return compress.Codecs.Lz4Raw
	case "zstd":
		return compress.Codecs.Zstd
	case "uncompressed":
		return compress.Codecs.Uncompressed
	default:
		return compress.Codecs.Snappy
	}
}

func arrowType(k table.Kind) arrow.DataType {
	switch k {
	case table.KindInt:
		return arrow.PrimitiveTypes.Int64
	case table.KindFloat:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// frameToArrowTable converts a frame to a single-chunk Arrow table.
func frameToArrowTable(f table.Frame, mem memory.Allocator) (arrow.Table, error) {
	schema := f.Schema()

	fields := make([]arrow.Field, len(schema))
	for i, field := range schema {
		fields[i] = arrow.Field{Name: field.Name, Type: arrowType(field.Kind), Nullable: true}
	}
	arrowSchema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(mem, arrowSchema)
	defer builder.Release()

	for row := range f.Len() {
		for col := range schema {
			if err := appendValue(builder.Field(col), f.Value(row, col)); err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", schema[col].Name, row, err)
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	return array.NewTableFromRecords(arrowSchema, []arrow.Record{rec}), nil
}

func appendValue(b array.Builder, v any) error {
	if fv, ok := v.(table.Float); ok {
		if !fv.Valid {
			b.AppendNull()
			return nil
		}
		v = fv.Value
	}

	switch b := b.(type) {
	case *array.Int64Builder:
		switch v := v.(type) {
		case int64:
			b.Append(v)
		case int:
			b.Append(int64(v))
		default:
			return fmt.Errorf("unsupported value %T for int64 column", v)
		}
	case *array.Float64Builder:
		switch v := v.(type) {
		case float64:
			b.Append(v)
		case int64:
			b.Append(float64(v))
		default:
			return fmt.Errorf("unsupported value %T for float64 column", v)
		}
	case *array.StringBuilder:
		b.Append(FormatValue(v))
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}
