// Package csvfile reads and writes the comma-separated best-track files.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/hurricane-tracks/internal/domain"
	"github.com/couchcryptid/hurricane-tracks/internal/fsutil"
)

// Reader streams data rows from a CSV file after its header line.
// It implements pipeline.RowReader.
type Reader struct {
	f      *os.File
	r      *csv.Reader
	header domain.Header
	line   int
}

// Open opens path and reads its header line.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.f = f
	return r, nil
}

// NewReader wraps an io.Reader and consumes its header line.
func NewReader(src io.Reader) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("read csv header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return &Reader{r: cr, header: domain.NewHeader(names), line: 1}, nil
}

// Header returns the parsed header line.
func (r *Reader) Header() domain.Header { return r.header }

// Next returns the next data row, or io.EOF at the end of the file.
func (r *Reader) Next() ([]string, error) {
	row, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read csv line %d: %w", r.line+1, err)
	}
	r.line++
	return row, nil
}

// Close closes the underlying file, if Open created one.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}

// ReadTable loads a whole CSV file into memory.
func ReadTable(path string) (domain.Table, error) {
	r, err := Open(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer r.Close()

	tbl := domain.Table{Header: r.Header()}
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return tbl, nil
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("%s: %w", path, err)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
}

// Writer replaces a CSV file in one step. It implements pipeline.TableWriter.
type Writer struct {
	path string
}

// NewWriter returns a Writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteTable replaces the file with header and rows in one step.
func (w *Writer) WriteTable(header []string, rows [][]string) error {
	return fsutil.WriteAtomic(w.path, func(dst io.Writer) error {
		cw := csv.NewWriter(dst)
		if err := cw.Write(header); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	})
}
