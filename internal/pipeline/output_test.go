package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	medalio "github.com/paveg/medalprep/internal/io"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/pipeline"
	"github.com/paveg/medalprep/internal/table"
	"github.com/paveg/medalprep/internal/testutil"
)

// readBack returns the header and the country_name column of an analysis file.
func readBack(t *testing.T, path string) ([]string, []string) {
	t.Helper()

	switch filepath.Ext(path) {
	case ".parquet":
		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		pq, err := file.NewParquetReader(f)
		require.NoError(t, err)
		defer pq.Close()

		reader, err := pqarrow.NewFileReader(pq, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
		require.NoError(t, err)
		tbl, err := reader.ReadTable(context.Background())
		require.NoError(t, err)
		defer tbl.Release()

		var header []string
		for _, field := range tbl.Schema().Fields() {
			header = append(header, field.Name)
		}
		var countries []string
		for _, chunk := range tbl.Column(model.ColCountryName).Data().Chunks() {
			names := chunk.(*array.String)
			for i := range names.Len() {
				countries = append(countries, names.Value(i))
			}
		}
		return header, countries

	case ".json":
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var rows []map[string]any
		require.NoError(t, json.Unmarshal(data, &rows))

		var countries []string
		for _, r := range rows {
			require.Len(t, r, len(model.AnalysisTable{}.Schema()))
			countries = append(countries, r["country_name"].(string))
		}
		return table.Columns(model.AnalysisTable{}), countries

	default:
		sheet, err := medalio.ReadRows(path)
		require.NoError(t, err)
		var countries []string
		for i := range sheet.Len() {
			countries = append(countries, sheet.Cell(i, model.ColCountryName))
		}
		return sheet.Header, countries
	}
}

func TestRunOutputFormats(t *testing.T) {
	for _, ext := range medalio.SupportedOutputs {
		t.Run(ext, func(t *testing.T) {
			ds := testutil.NewDataset(t)
			cfg := ds.Config(t)
			cfg.AnalysisOutput = "analysis" + ext
			cfg.TallyOutput = "tally" + ext

			res, err := pipeline.Run(context.Background(), cfg, pipeline.Options{})
			require.NoError(t, err)

			header, countries := readBack(t, cfg.OutputPath(cfg.AnalysisOutput))
			assert.Equal(t, table.Columns(model.AnalysisTable{}), header)
			require.Len(t, countries, len(res.Analysis))
			for i, r := range res.Analysis {
				assert.Equal(t, r.CountryName, countries[i])
			}

			info, err := os.Stat(cfg.OutputPath(cfg.TallyOutput))
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}
