package coltable

import (
	"github.com/samthor/treegrid/value"
)

// FromText builds a Table from text records, parsing each cell with value.Parse.
// Records must have one field per column. A cell that does not parse is reported as a *ColumnError.
func FromText(names []string, kinds []value.Kind, records [][]string) (*Table, error) {
	if len(names) != len(kinds) {
		return nil, &RowLengthError{Expected: len(names), Found: len(kinds)}
	}

	t := New()
	for i, name := range names {
		t.AddColumn(name, kinds[i])
	}

	row := make([]value.Value, len(kinds))
	for _, rec := range records {
		if len(rec) != len(kinds) {
			return nil, &RowLengthError{Expected: len(kinds), Found: len(rec)}
		}
		for j, text := range rec {
			v, err := value.Parse(kinds[j], text)
			if err != nil {
				return nil, &ColumnError{Column: names[j], Err: err}
			}
			row[j] = v
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}
