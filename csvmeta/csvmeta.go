// Package csvmeta loads the per-snapshot table (typically OOMMF energy terms exported from an
// .odt file) that accompanies a folder of OMF files.
//
// Rows are matched to OMF files by ordinal position, so a Table only offers indexed access.
package csvmeta

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when the input holds no header row.
var ErrNoHeader = errors.New("csv has no header row")

// Table is a parsed CSV file: a header row and the records that follow it.
type Table struct {
	header []string
	rows   [][]string
}

// Load reads a whole CSV document from r.
//
// The first row names the columns. Records with a different number of fields than the header
// are rejected.
func Load(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrNoHeader
	}
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv rows: %w", err)
	}

	return Table{header: header, rows: rows}, nil
}

// Columns returns the header names.
func (t Table) Columns() []string {
	return t.header
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Row returns data row i as an ordered Record.
func (t Table) Row(i int) (Record, error) {
	if i < 0 || i >= len(t.rows) {
		return Record{}, fmt.Errorf("csv row %d out of range [0,%d)", i, len(t.rows))
	}

	raw := t.rows[i]
	rec := Record{
		Keys:   make([]string, len(t.header)),
		Values: make([]any, len(t.header)),
	}
	copy(rec.Keys, t.header)
	for c, cell := range raw {
		rec.Values[c] = parseCell(cell)
	}

	return rec, nil
}

// parseCell turns numeric cells into float64 and empty cells into NaN; anything else stays a string.
func parseCell(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	return s
}

// Record is one CSV row with its column names, in file order.
//
// Values holds float64 for numeric cells and string otherwise.
type Record struct {
	Keys   []string `json:"keys"`
	Values []any    `json:"values"`
}

// Len returns the number of cells.
func (r Record) Len() int {
	return len(r.Keys)
}

// Float returns the numeric value of column key.
func (r Record) Float(key string) (float64, bool) {
	for i, k := range r.Keys {
		if k == key {
			v, ok := r.Values[i].(float64)
			return v, ok
		}
	}

	return 0, false
}
