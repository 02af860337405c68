// Package csvio reads and writes comma-separated records.
//
// Fields are split on commas and records on newlines, both only outside double quotes.
// A doubled quote inside quotes is a literal quote, and carriage returns are dropped everywhere.
package csvio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"strings"

	giter "github.com/samthor/treegrid/iter"
)

// Reader reads records from a byte stream.
type Reader struct {
	r   *bufio.Reader
	err error // sticky

	field    []byte
	record   []string
	inQuotes bool
	started  bool // any input was consumed for the current record
}

// NewReader returns a new Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func (r *Reader) endField() {
	r.record = append(r.record, string(r.field))
	r.field = r.field[:0]
}

func (r *Reader) endRecord() []string {
	r.endField()
	out := r.record
	r.record = nil
	r.started = false
	return out
}

// Read returns the next record, or io.EOF when there are no more.
// Any other error is from the underlying reader, and is returned again on later calls.
func (r *Reader) Read() ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}

	for {
		c, err := r.r.ReadByte()
		if err != nil {
			r.err = err
			if err == io.EOF && r.started {
				return r.endRecord(), nil
			}
			return nil, err
		}

		if c == '\r' {
			continue
		}
		r.started = true

		switch {
		case c == '"' && r.inQuotes:
			if next, _ := r.r.Peek(1); len(next) == 1 && next[0] == '"' {
				r.r.ReadByte()
				r.field = append(r.field, '"')
			} else {
				r.inQuotes = false
			}
		case c == '"':
			r.inQuotes = true
		case c == ',' && !r.inQuotes:
			r.endField()
		case c == '\n' && !r.inQuotes:
			return r.endRecord(), nil
		default:
			r.field = append(r.field, c)
		}
	}
}

// All yields each remaining record.
// A read failure is yielded once as the error, after which iteration stops.
func (r *Reader) All() iter.Seq2[[]string, error] {
	if r.err != nil && r.err != io.EOF {
		return giter.Seq2Error[[]string](r.err)
	}
	return func(yield func([]string, error) bool) {
		for {
			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll reads every record from r, padding each with empty fields to the widest record.
func ReadAll(r io.Reader) ([][]string, error) {
	records, err := giter.CollectErr(NewReader(r).All())
	if err != nil {
		return nil, err
	}
	Pad(records)
	return records, nil
}

// Pad extends every record in place to the width of the widest one, returning that width.
func Pad(records [][]string) (width int) {
	for _, rec := range records {
		width = max(width, len(rec))
	}
	for i, rec := range records {
		for len(rec) < width {
			rec = append(rec, "")
		}
		records[i] = rec
	}
	return width
}

// Writer writes records.
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a new Writer to w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\n\r")
}

// Write writes a single record, terminated by a newline.
func (w *Writer) Write(record []string) error {
	var b bytes.Buffer
	for i, field := range record {
		if i > 0 {
			b.WriteByte(',')
		}
		if !needsQuotes(field) {
			b.WriteString(field)
			continue
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := w.w.Write(b.Bytes())
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// WriteAll writes all records and flushes.
func (w *Writer) WriteAll(records [][]string) error {
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}
