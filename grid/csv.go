package grid

import (
	"io"

	"github.com/samthor/treegrid/csvio"
)

// ReadCSV replaces everything, including history, with the records read from r.
// If reading fails, the Grid is left unchanged.
func (g *Grid) ReadCSV(r io.Reader) error {
	records, err := csvio.ReadAll(r)
	if err != nil {
		return err
	}
	g.LoadRecords(records)
	return nil
}

// WriteCSV writes all cells to w in logical order.
func (g *Grid) WriteCSV(w io.Writer) error {
	return csvio.NewWriter(w).WriteAll(g.Records())
}
