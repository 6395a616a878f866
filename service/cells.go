package service

import (
	"fmt"
	"strconv"
	"strings"
)

// CellCoord is a zero-based (row, column) pair.
type CellCoord struct {
	Row int
	Col int
}

// CellRange is an inclusive rectangle, normalized so Start <= End in both
// dimensions.
type CellRange struct {
	Start CellCoord
	End   CellCoord
}

// RangeRef is a range optionally qualified with the locator of a foreign
// spreadsheet, as in "domainA/sheet-1!A1:B3".
type RangeRef struct {
	DomainID string
	SheetID  string
	Range    CellRange
	RawRange string
	Remote   bool
}

// ParseCellID converts a textual cell id such as "B12" into zero-based
// coordinates. Columns use a case-insensitive bijective base-26 encoding
// (A=0 ... Z=25, AA=26); rows are 1-based decimal.
func ParseCellID(text string) (CellCoord, error) {
	if text == "" {
		return CellCoord{}, NewInvalidCellIDError("empty cell id", nil)
	}

	i := 0
	col := 0
	for i < len(text) {
		ch := text[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			col = col*26 + int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			col = col*26 + int(ch-'a') + 1
		default:
			goto digits
		}
		i++
	}
digits:
	if i == 0 {
		return CellCoord{}, NewInvalidCellIDError(fmt.Sprintf("cell id %q has no column letters", text), nil)
	}
	if i == len(text) {
		return CellCoord{}, NewInvalidCellIDError(fmt.Sprintf("cell id %q has no row number", text), nil)
	}

	row, err := strconv.Atoi(text[i:])
	if err != nil || row <= 0 {
		return CellCoord{}, NewInvalidCellIDError(fmt.Sprintf("cell id %q has an invalid row number", text), err)
	}

	return CellCoord{Row: row - 1, Col: col - 1}, nil
}

// FormatCellID is the inverse of ParseCellID, producing the canonical
// upper-case form.
func FormatCellID(c CellCoord) string {
	col := ""
	n := c.Col + 1
	for n > 0 {
		rem := (n - 1) % 26
		col = string(rune('A'+rem)) + col
		n = (n - 1) / 26
	}
	return col + strconv.Itoa(c.Row+1)
}

// ParseRange converts "<cellId>:<cellId>" into a normalized CellRange.
// The two corners may be given in any order.
func ParseRange(text string) (CellRange, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return CellRange{}, NewInvalidRangeError(fmt.Sprintf("range %q must be <cellId>:<cellId>", text), nil)
	}

	a, err := ParseCellID(parts[0])
	if err != nil {
		return CellRange{}, NewInvalidRangeError(fmt.Sprintf("range %q has an invalid start cell", text), err)
	}
	b, err := ParseCellID(parts[1])
	if err != nil {
		return CellRange{}, NewInvalidRangeError(fmt.Sprintf("range %q has an invalid end cell", text), err)
	}

	r := CellRange{Start: a, End: b}
	if r.Start.Row > r.End.Row {
		r.Start.Row, r.End.Row = r.End.Row, r.Start.Row
	}
	if r.Start.Col > r.End.Col {
		r.Start.Col, r.End.Col = r.End.Col, r.Start.Col
	}
	return r, nil
}

// ParseRangeRef splits an optional "domain/sheet!" locator off a range
// before coordinate parsing.
func ParseRangeRef(text string) (RangeRef, error) {
	locator, rawRange, qualified := strings.Cut(text, "!")
	if !qualified {
		rng, err := ParseRange(text)
		if err != nil {
			return RangeRef{}, err
		}
		return RangeRef{Range: rng, RawRange: text}, nil
	}

	domainID, sheetID, ok := strings.Cut(locator, "/")
	if !ok || domainID == "" || sheetID == "" {
		return RangeRef{}, NewInvalidRangeError(fmt.Sprintf("range %q has an invalid locator, want domain/sheet!range", text), nil)
	}
	rng, err := ParseRange(rawRange)
	if err != nil {
		return RangeRef{}, err
	}
	return RangeRef{DomainID: domainID, SheetID: sheetID, Range: rng, RawRange: rawRange, Remote: true}, nil
}

// ExtractRange returns the rectangular slice of a computed value matrix
// bounded by the range, inclusive on both ends and clamped to the matrix.
func ExtractRange(values [][]string, r CellRange) [][]string {
	out := make([][]string, 0, r.End.Row-r.Start.Row+1)
	for row := r.Start.Row; row <= r.End.Row; row++ {
		if row < 0 || row >= len(values) {
			continue
		}
		line := make([]string, 0, r.End.Col-r.Start.Col+1)
		for col := r.Start.Col; col <= r.End.Col; col++ {
			if col < 0 || col >= len(values[row]) {
				line = append(line, "")
				continue
			}
			line = append(line, values[row][col])
		}
		out = append(out, line)
	}
	return out
}
