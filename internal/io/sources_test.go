package io_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	perrors "github.com/paveg/medalprep/internal/errors"
	"github.com/paveg/medalprep/internal/io"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetOf(t *testing.T, csvData string) *io.Sheet {
	t.Helper()
	sheet, err := io.NewCSVReader(strings.NewReader(csvData), io.DefaultCSVOptions()).Read()
	require.NoError(t, err)
	return sheet
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseMedals(t *testing.T) {
	sheet := sheetOf(t, "discipline_title,slug_game,medal_type,country_name,country_code\n"+
		"Athletics,rio-2016,GOLD,Kenya,KE\n"+
		"Rugby,rio-2016,GOLD,Fiji,\n")

	medals, err := io.ParseMedals(sheet)
	require.NoError(t, err)
	assert.Equal(t, []model.MedalRecord{
		{GameSlug: "rio-2016", CountryName: "Kenya", CountryCode: "KE", MedalType: "GOLD"},
		{GameSlug: "rio-2016", CountryName: "Fiji", CountryCode: "", MedalType: "GOLD"},
	}, medals)

	t.Run("missing column", func(t *testing.T) {
		_, err := io.ParseMedals(sheetOf(t, "slug_game,country_name\nrio-2016,Kenya\n"))
		var pe *perrors.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "country_code", pe.Column)
	})
}

func TestParseHosts(t *testing.T) {
	sheet := sheetOf(t, "game_slug,game_end_date,game_location,game_name,game_season,game_year\n"+
		"rio-2016,2016-08-21,Brazil,Rio 2016,Summer,2016\n"+
		"sochi-2014,2014-02-23,Russian Federation,Sochi 2014,Winter,2014\n")

	hosts, err := io.ParseHosts(sheet)
	require.NoError(t, err)
	require.Len(t, hosts, 2)
	assert.Equal(t, model.Host{GameSlug: "rio-2016", Season: "Summer", Year: 2016, Location: "Brazil"}, hosts[0])

	t.Run("bad year", func(t *testing.T) {
		_, err := io.ParseHosts(sheetOf(t, "game_slug,game_season,game_year,game_location\nx,Summer,20x6,Brazil\n"))
		var pe *perrors.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "game_year", pe.Column)
		assert.Contains(t, err.Error(), `"20x6"`)
	})

	t.Run("no rows", func(t *testing.T) {
		_, err := io.ParseHosts(sheetOf(t, "game_slug,game_season,game_year,game_location\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input has no rows")
	})
}

func TestParseWide(t *testing.T) {
	sheet := sheetOf(t, "country,geo,2004,2000,notes\n"+
		"Kenya,ken,3M,1.2K,x\n"+
		"Fiji,fji,,NaN,\n"+
		",,1,2,\n")

	w, err := io.ParseWide(sheet, "pop", "")
	require.NoError(t, err)

	assert.Equal(t, "pop", w.Name)
	assert.Equal(t, []int{2000, 2004}, w.Years)
	require.Equal(t, 2, w.Len())

	assert.Equal(t, "Kenya", w.Rows[0].Country)
	assert.Equal(t, []table.Float{table.Some(1200), table.Some(3e6)}, w.Rows[0].Values)
	assert.Equal(t, []table.Float{table.Null(), table.Null()}, w.Rows[1].Values)

	t.Run("infinite cells are null", func(t *testing.T) {
		w, err := io.ParseWide(sheetOf(t, "country,2000,2004,2008\nKenya,Inf,5,-Inf\nFiji,+inf,,2\n"), "pop", "")
		require.NoError(t, err)
		assert.Equal(t, []table.Float{table.Null(), table.Some(5), table.Null()}, w.Rows[0].Values)
		assert.Equal(t, []table.Float{table.Null(), table.Null(), table.Some(2)}, w.Rows[1].Values)
	})

	t.Run("custom country column", func(t *testing.T) {
		w, err := io.ParseWide(sheetOf(t, "name,1990\nFiji,7\n"), "x", "name")
		require.NoError(t, err)
		assert.Equal(t, "Fiji", w.Rows[0].Country)
	})

	t.Run("unparseable cell aborts", func(t *testing.T) {
		_, err := io.ParseWide(sheetOf(t, "country,2000\nKenya,lots\n"), "pop", "")
		var pe *perrors.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "ParseScaledNumber", pe.Op)
		assert.Equal(t, "2000", pe.Column)
		assert.Contains(t, pe.Message, "Kenya")
	})

	t.Run("no year columns", func(t *testing.T) {
		_, err := io.ParseWide(sheetOf(t, "country,notes\nKenya,x\n"), "pop", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no year columns")
	})

	t.Run("missing country column", func(t *testing.T) {
		_, err := io.ParseWide(sheetOf(t, "nation,2000\nKenya,1\n"), "pop", "")
		var pe *perrors.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "country", pe.Column)
	})
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("CSV wide file", func(t *testing.T) {
		path := writeFile(t, dir, "lex.csv", "country,2000\nKenya,55.5\n")
		w, err := io.ReadWide(path, "lex", "country")
		require.NoError(t, err)
		assert.Equal(t, table.Some(55.5), w.Rows[0].Values[0])
	})

	t.Run("XLSX wide file", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"country", 2000}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Kenya", 1.25}))
		path := filepath.Join(dir, "gdp.xlsx")
		require.NoError(t, f.SaveAs(path))

		w, err := io.ReadWide(path, "gdp", "country")
		require.NoError(t, err)
		assert.Equal(t, []int{2000}, w.Years)
		assert.Equal(t, table.Some(1.25), w.Rows[0].Values[0])
	})

	t.Run("errors carry the source path", func(t *testing.T) {
		path := writeFile(t, dir, "bad.csv", "country,2000\nKenya,?\n")
		_, err := io.ReadWide(path, "bad", "country")
		var pe *perrors.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, path, pe.Source)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := io.ReadMedals(filepath.Join(dir, "absent.csv"))
		var pe *perrors.PipelineError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "ReadRows", pe.Op)
	})

	t.Run("hosts and medals", func(t *testing.T) {
		hostsPath := writeFile(t, dir, "hosts.csv", "game_slug,game_season,game_year,game_location\nrio-2016,Summer,2016,Brazil\n")
		medalsPath := writeFile(t, dir, "medals.csv", "slug_game,country_name,country_code,medal_type\nrio-2016,Kenya,KE,GOLD\n")

		hosts, err := io.ReadHosts(hostsPath)
		require.NoError(t, err)
		assert.Len(t, hosts, 1)

		medals, err := io.ReadMedals(medalsPath)
		require.NoError(t, err)
		assert.Len(t, medals, 1)
	})
}
