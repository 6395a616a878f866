package domain

// Spreadsheet is the mutable raw-content state of one sheet. It is owned
// exclusively by the Spreadsheets service of the domain that created it;
// other domains only ever observe computed value matrices fetched over the
// network.
type Spreadsheet struct {
	SheetID    string     `json:"sheetId" msgpack:"sheetId"`
	Owner      string     `json:"owner" msgpack:"owner"`
	DomainID   string     `json:"domainId" msgpack:"domainId"`
	Rows       int        `json:"rows" msgpack:"rows"`
	Columns    int        `json:"columns" msgpack:"columns"`
	RawValues  [][]string `json:"rawValues" msgpack:"rawValues"`
	SharedWith []string   `json:"sharedWith" msgpack:"sharedWith"`
}

// OwnerDomain returns the domain of the owning user.
func (s *Spreadsheet) OwnerDomain() string {
	return ExtractDomain(s.Owner)
}

// CellRawValue returns the raw content at (row, col), or "" when the
// coordinate is outside the allocated grid.
func (s *Spreadsheet) CellRawValue(row, col int) string {
	if row < 0 || row >= len(s.RawValues) {
		return ""
	}
	if col < 0 || col >= len(s.RawValues[row]) {
		return ""
	}
	return s.RawValues[row][col]
}

// PlaceCellRawValue replaces the raw content of exactly one coordinate.
// Returns false when the coordinate lies outside the declared grid.
func (s *Spreadsheet) PlaceCellRawValue(row, col int, raw string) bool {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Columns {
		return false
	}
	s.ensureGrid()
	s.RawValues[row][col] = raw
	return true
}

// IsSharedWith reports whether the qualified user id appears in the share
// set. The owner is not implicitly part of it.
func (s *Spreadsheet) IsSharedWith(userID string) bool {
	for _, u := range s.SharedWith {
		if u == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so evaluation can run without holding the
// store's lock over the live sheet.
func (s *Spreadsheet) Clone() Spreadsheet {
	out := *s
	out.SharedWith = append([]string(nil), s.SharedWith...)
	out.RawValues = make([][]string, len(s.RawValues))
	for i, row := range s.RawValues {
		out.RawValues[i] = append([]string(nil), row...)
	}
	return out
}

// ensureGrid grows RawValues to the declared Rows x Columns shape. Sheets
// arriving over the wire may carry a smaller (or nil) matrix.
func (s *Spreadsheet) ensureGrid() {
	for len(s.RawValues) < s.Rows {
		s.RawValues = append(s.RawValues, make([]string, s.Columns))
	}
	for i, row := range s.RawValues {
		for len(row) < s.Columns {
			row = append(row, "")
		}
		s.RawValues[i] = row
	}
}
