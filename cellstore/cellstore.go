// Package cellstore holds text cells addressed by physical row and column.
package cellstore

// Dense is a rectangular store of text cells, grown on demand.
// Cells that were never written read as the empty string.
// The zero Dense is empty and ready to use.
type Dense struct {
	rows [][]string
	cols int
}

// New returns a Dense with the given initial capacity.
func New(rows, cols int) *Dense {
	d := &Dense{}
	d.GrowColsTo(cols)
	d.GrowRowsTo(rows)
	return d
}

// FromRecords builds a Dense from row-major records, padding short rows.
// The records are copied.
func FromRecords(records [][]string) *Dense {
	d := &Dense{}
	for _, r := range records {
		d.cols = max(d.cols, len(r))
	}
	d.rows = make([][]string, len(records))
	for i, r := range records {
		row := make([]string, d.cols)
		copy(row, r)
		d.rows[i] = row
	}
	return d
}

// Rows returns the number of physical rows.
func (d *Dense) Rows() int {
	return len(d.rows)
}

// Cols returns the number of physical columns.
func (d *Dense) Cols() int {
	return d.cols
}

// Get returns the cell at (row, col), or "" if outside the store.
func (d *Dense) Get(row, col int) string {
	if row < 0 || row >= len(d.rows) || col < 0 || col >= d.cols {
		return ""
	}
	return d.rows[row][col]
}

// Set writes the cell at (row, col), growing the store if needed.
// Negative coordinates are ignored.
func (d *Dense) Set(row, col int, value string) {
	if row < 0 || col < 0 {
		return
	}
	d.GrowColsTo(col + 1)
	d.GrowRowsTo(row + 1)
	d.rows[row][col] = value
}

// GrowRowsTo ensures there are at least n physical rows.
func (d *Dense) GrowRowsTo(n int) {
	for len(d.rows) < n {
		d.rows = append(d.rows, make([]string, d.cols))
	}
}

// GrowColsTo ensures there are at least n physical columns.
func (d *Dense) GrowColsTo(n int) {
	if n <= d.cols {
		return
	}
	for i, row := range d.rows {
		d.rows[i] = append(row, make([]string, n-d.cols)...)
	}
	d.cols = n
}
