// tables/tables.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package tables reads the candidate and scenario tables that a simulation
// is run over. Tables may be CSV files with a header row or JSON arrays of
// objects; either may be zstd-compressed, in which case the filename should
// end in ".zst".
package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mmp/airrescue/sim"
	"github.com/mmp/airrescue/util"
)

var (
	ErrMissingColumn     = fmt.Errorf("%w: missing required column", sim.ErrParse)
	ErrUnknownFormat     = errors.New("Unknown table format")
	ErrMalformedNumber   = fmt.Errorf("%w: malformed number", sim.ErrParse)
	ErrDuplicateColumn   = fmt.Errorf("%w: duplicate column", sim.ErrParse)
	ErrNonIntegralNumber = fmt.Errorf("%w: expected an integer", sim.ErrParse)
)

// normalizeColumn maps header variants like "Empty_Weight(lbs)",
// "empty weight" and "EmptyWeight" to the same key, "emptyweight".
func normalizeColumn(h string) string {
	if i := strings.IndexByte(h, '('); i != -1 {
		h = h[:i]
	}
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", " ", "", "-", "").Replace(h)
}

var columnAliases = map[string]string{
	"maxnoofpeople":   "maxpeople",
	"maxnumofpeople":  "maxpeople",
	"maxpassengers":   "maxpeople",
	"tendency":        "weathertendency",
	"people":          "numberofpeople",
	"maxwindspeed":    "windspeed",
	"scenario":        "name",
	"scenarioname":    "name",
	"candidate":       "name",
	"candidatename":   "name",
	"aircraft":        "name",
	"minimumaltitude": "minaltitude",
	"maximumaltitude": "maxaltitude",
}

func columnKey(h string) string {
	k := normalizeColumn(h)
	if a, ok := columnAliases[k]; ok {
		return a
	}
	return k
}

// csvTable is a CSV file with its header row resolved to column keys.
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

func readCSV(r io.Reader, required []string, e *util.ErrorLogger) (*csvTable, bool) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		e.Error(fmt.Errorf("%w: %v", sim.ErrParse, err))
		return nil, false
	}
	if len(records) == 0 {
		e.Error(fmt.Errorf("%w: no header row", ErrMissingColumn))
		return nil, false
	}

	t := &csvTable{columns: make(map[string]int), rows: records[1:]}
	for i, h := range records[0] {
		k := columnKey(h)
		if _, ok := t.columns[k]; ok {
			e.Error(fmt.Errorf("%q: %w", h, ErrDuplicateColumn))
		}
		t.columns[k] = i
	}

	ok := true
	for _, req := range required {
		if _, found := t.columns[req]; !found {
			e.Error(fmt.Errorf("%q: %w", req, ErrMissingColumn))
			ok = false
		}
	}
	return t, ok
}

func (t *csvTable) cell(row []string, key string) string {
	if i, ok := t.columns[key]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformedNumber)
	}
	return v, nil
}

// parseInt accepts integral floats like "300.0" as well, since spreadsheet
// exports often write integer columns that way.
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q: %w", s, ErrNonIntegralNumber)
	}
	return int(f), nil
}

// parseOptionalInt returns nil for empty and "NaN" cells, which is how
// unspecified bounds are written.
func parseOptionalInt(s string) (*int, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	v, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
