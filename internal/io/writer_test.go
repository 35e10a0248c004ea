package io_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/medalprep/internal/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedOutput(t *testing.T) {
	assert.True(t, io.SupportedOutput("out/analysis.csv"))
	assert.True(t, io.SupportedOutput("analysis.PARQUET"))
	assert.True(t, io.SupportedOutput("analysis.xlsx"))
	assert.True(t, io.SupportedOutput("analysis.json"))
	assert.False(t, io.SupportedOutput("analysis.txt"))
	assert.False(t, io.SupportedOutput("analysis"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	for _, ext := range io.SupportedOutputs {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "nested", "analysis"+ext)
			require.NoError(t, io.WriteFile(path, sampleFrame()))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	t.Run("csv output reads back", func(t *testing.T) {
		path := filepath.Join(dir, "back.csv")
		require.NoError(t, io.WriteFile(path, sampleFrame()))

		sheet, err := io.ReadRows(path)
		require.NoError(t, err)
		assert.Equal(t, 3, sheet.Len())
	})

	t.Run("parquet output reads back", func(t *testing.T) {
		path := filepath.Join(dir, "back.parquet")
		require.NoError(t, io.WriteFile(path, sampleFrame()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		tbl := readParquet(t, data)
		defer tbl.Release()
		assert.Equal(t, int64(3), tbl.NumRows())
		assert.Equal(t, "gdp_per_capita", tbl.Schema().Field(2).Name)
	})

	t.Run("xlsx output reads back", func(t *testing.T) {
		path := filepath.Join(dir, "back.xlsx")
		require.NoError(t, io.WriteFile(path, sampleFrame()))

		sheet, err := io.ReadRows(path)
		require.NoError(t, err)
		assert.Equal(t, "2004", sheet.Cell(1, 1))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		err := io.WriteFile(filepath.Join(dir, "analysis.txt"), sampleFrame())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output extension")
		assert.NoFileExists(t, filepath.Join(dir, "analysis.txt"))
	})
}
