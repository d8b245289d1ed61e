// Package catalog reads SKU master files and writes placement exports.
// The wire format is CSV with a header row; column order is free.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wms-platform/slotting-service/internal/domain"
)

// Required header columns. Matching is case-insensitive and ignores
// surrounding whitespace.
const (
	colSKU          = "sku"
	colDescription  = "description"
	colLength       = "length_in"
	colWidth        = "width_in"
	colHeight       = "height_in"
	colWeight       = "weight_lbs"
	colEaches       = "eaches"
	colWeeklyPicks  = "weekly_picks"
	colTrayConfig   = "tray_config"
	colPickPriority = "pick_priority"
)

var requiredColumns = []string{
	colSKU, colDescription, colLength, colWidth, colHeight, colWeight,
	colEaches, colWeeklyPicks, colTrayConfig, colPickPriority,
}

// ParseError reports a malformed catalog row. Row numbers are 1-based
// and count the header, matching what a user sees in a spreadsheet.
type ParseError struct {
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("catalog row %d, column %s: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("catalog row %d: %v", e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load parses a SKU catalog from CSV. Parsing is strict: the first
// malformed row aborts the load with a ParseError naming the row, so
// a typo'd file never produces a silently truncated slotting run.
// Blank lines are skipped.
func Load(r io.Reader) ([]domain.SKU, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("catalog header is missing column %q", col)
		}
	}

	var skus []domain.SKU
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &ParseError{Row: row, Err: err}
		}
		if blankRow(record) {
			continue
		}

		p := rowParser{record: record, index: index, row: row}
		sku := domain.SKU{
			SKUID:        p.str(colSKU),
			Description:  p.str(colDescription),
			Length:       p.float(colLength),
			Width:        p.float(colWidth),
			Height:       p.float(colHeight),
			Weight:       p.float(colWeight),
			Eaches:       p.int(colEaches),
			WeeklyPicks:  p.int(colWeeklyPicks),
			ConfigID:     p.int(colTrayConfig),
			PickPriority: p.int(colPickPriority),
		}
		if p.err != nil {
			return nil, p.err
		}
		if sku.SKUID == "" {
			return nil, &ParseError{Row: row, Column: colSKU, Err: fmt.Errorf("SKU id is required")}
		}
		skus = append(skus, sku)
	}

	return skus, nil
}

func blankRow(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// rowParser accumulates the first conversion error of a row so the
// caller can read fields without checking each one.
type rowParser struct {
	record []string
	index  map[string]int
	row    int
	err    error
}

func (p *rowParser) str(col string) string {
	i, ok := p.index[col]
	if !ok || i >= len(p.record) {
		return ""
	}
	return strings.TrimSpace(p.record[i])
}

func (p *rowParser) float(col string) float64 {
	if p.err != nil {
		return 0
	}
	raw := p.str(col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = &ParseError{Row: p.row, Column: col, Err: fmt.Errorf("cannot parse %q as a number", raw)}
		return 0
	}
	return v
}

func (p *rowParser) int(col string) int {
	if p.err != nil {
		return 0
	}
	raw := p.str(col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = &ParseError{Row: p.row, Column: col, Err: fmt.Errorf("cannot parse %q as an integer", raw)}
		return 0
	}
	return v
}
