package io

import (
	stderrors "errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paveg/medalprep/internal/errors"
	"github.com/paveg/medalprep/internal/model"
	"github.com/paveg/medalprep/internal/normalize"
	"github.com/paveg/medalprep/internal/table"
	"github.com/paveg/medalprep/internal/validation"
)

// Source column names.
const (
	ColSlugGame    = "slug_game"
	ColCountryName = "country_name"
	ColCountryCode = "country_code"
	ColMedalType   = "medal_type"

	ColGameSlug     = "game_slug"
	ColGameSeason   = "game_season"
	ColGameYear     = "game_year"
	ColGameLocation = "game_location"

	// DefaultCountryColumn names the country column of wide indicator files.
	DefaultCountryColumn = "country"
)

// ReadRows reads a CSV or XLSX file into a Sheet, choosing by extension.
// Anything that is not .xlsx is read as CSV.
func ReadRows(path string) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("ReadRows", path, err)
	}
	defer file.Close()

	var reader DataReader
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		opts := DefaultXLSXOptions()
		opts.SheetName = ""
		reader = NewXLSXReader(file, opts)
	} else {
		reader = NewCSVReader(file, DefaultCSVOptions())
	}

	sheet, err := reader.Read()
	if err != nil {
		return nil, annotate("ReadRows", path, err)
	}
	return sheet, nil
}

// annotate attaches the source path to pipeline errors and wraps anything else
// as an i/o failure.
func annotate(op, path string, err error) error {
	var pe *errors.PipelineError
	if stderrors.As(err, &pe) {
		return pe.WithSource(path)
	}
	return errors.NewIOError(op, path, err)
}

// ReadMedals reads the medal source at path.
func ReadMedals(path string) ([]model.MedalRecord, error) {
	sheet, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	medals, err := ParseMedals(sheet)
	if err != nil {
		return nil, annotate("ReadMedals", path, err)
	}
	return medals, nil
}

// ParseMedals converts a sheet into medal records.
func ParseMedals(s *Sheet) ([]model.MedalRecord, error) {
	if err := validation.ValidateColumns(s, "ReadMedals",
		ColSlugGame, ColCountryName, ColCountryCode, ColMedalType); err != nil {
		return nil, err
	}

	slug := s.ColumnIndex(ColSlugGame)
	name := s.ColumnIndex(ColCountryName)
	code := s.ColumnIndex(ColCountryCode)
	medal := s.ColumnIndex(ColMedalType)

	medals := make([]model.MedalRecord, s.Len())
	for i := range medals {
		medals[i] = model.MedalRecord{
			GameSlug:    s.Cell(i, slug),
			CountryName: s.Cell(i, name),
			CountryCode: s.Cell(i, code),
			MedalType:   s.Cell(i, medal),
		}
	}
	return medals, nil
}

// ReadHosts reads the host list at path.
func ReadHosts(path string) ([]model.Host, error) {
	sheet, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	hosts, err := ParseHosts(sheet)
	if err != nil {
		return nil, annotate("ReadHosts", path, err)
	}
	return hosts, nil
}

// ParseHosts converts a sheet into hosts. game_year must be an integer.
func ParseHosts(s *Sheet) ([]model.Host, error) {
	if err := validation.NewCompoundValidator(
		validation.NewColumnValidator(s, "ReadHosts", ColGameSlug, ColGameSeason, ColGameYear, ColGameLocation),
		validation.NewNotEmptyValidator(s, "ReadHosts"),
	).Validate(); err != nil {
		return nil, err
	}

	slug := s.ColumnIndex(ColGameSlug)
	season := s.ColumnIndex(ColGameSeason)
	year := s.ColumnIndex(ColGameYear)
	location := s.ColumnIndex(ColGameLocation)

	hosts := make([]model.Host, s.Len())
	for i := range hosts {
		raw := s.Cell(i, year)
		y, err := strconv.Atoi(raw)
		if err != nil {
			pe := errors.NewParseError("ReadHosts", raw, err)
			pe.Column = ColGameYear
			return nil, pe
		}
		hosts[i] = model.Host{
			GameSlug: s.Cell(i, slug),
			Season:   s.Cell(i, season),
			Year:     y,
			Location: s.Cell(i, location),
		}
	}
	return hosts, nil
}

// ReadWide reads a wide indicator file at path. The table is named name.
func ReadWide(path, name, countryColumn string) (*table.Wide, error) {
	sheet, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	w, err := ParseWide(sheet, name, countryColumn)
	if err != nil {
		return nil, annotate("ReadWide", path, err)
	}
	return w, nil
}

// ParseWide converts a sheet with one row per country and one column per year
// into a wide table. Year columns are the headers that parse as integers;
// other columns are ignored. Cells go through normalize.ParseScaledNumber;
// empty, NaN and infinite cells are null. Rows without a country are skipped.
func ParseWide(s *Sheet, name, countryColumn string) (*table.Wide, error) {
	if countryColumn == "" {
		countryColumn = DefaultCountryColumn
	}
	if err := validation.ValidateColumns(s, "ReadWide", countryColumn); err != nil {
		return nil, err
	}
	country := s.ColumnIndex(countryColumn)

	var (
		years   []int
		columns []int
		seen    = make(map[int]bool)
	)
	for i, h := range s.Header {
		if i == country {
			continue
		}
		y, err := strconv.Atoi(h)
		if err != nil || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
		columns = append(columns, i)
	}
	if len(years) == 0 {
		return nil, errors.NewValidationError("ReadWide", "", "no year columns")
	}

	// NewWide sorts the years, so cells are placed by year rather than position.
	w := table.NewWide(name, years)
	for i := range s.Len() {
		label := s.Cell(i, country)
		if label == "" {
			continue
		}
		values := make([]table.Float, len(w.Years))
		for k, col := range columns {
			v, err := parseCell(s.Cell(i, col))
			if err != nil {
				var pe *errors.PipelineError
				if stderrors.As(err, &pe) {
					pe.Column = s.Header[col]
					pe.Message = fmt.Sprintf("row %d (%s): %s", i+2, label, pe.Message)
				}
				return nil, err
			}
			values[w.YearIndex(years[k])] = v
		}
		w.AddRow(label, values)
	}
	return w, nil
}

func parseCell(raw string) (table.Float, error) {
	if raw == "" {
		return table.Null(), nil
	}
	v, err := normalize.ParseScaledNumber(raw)
	if err != nil {
		return table.Null(), err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return table.Null(), nil
	}
	return table.Some(v), nil
}
