// Package table loads whitespace-delimited numeric text tables, such as the
// convergence.txt files written by the BEM test drivers.
package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table is a rectangular grid of float64 values, one row per non-empty input
// line. Rows keep the order they had in the source; the loader never sorts,
// filters or converts values.
type Table struct {
	rows [][]float64
	cols int
}

// FileAccessError reports that the input file could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("table: cannot read %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a malformed row: a token that is not a number, or a row
// whose column count differs from the first row's.
type ParseError struct {
	Name string // source name (file path or reader label)
	Line int    // 1-based line number in the source
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("table: %s:%d: %s", e.Name, e.Line, e.Msg)
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.rows) }

// Cols returns the number of columns (0 for an empty table).
func (t *Table) Cols() int { return t.cols }

// At returns the value at row r, column c.
func (t *Table) At(r, c int) float64 { return t.rows[r][c] }

// Column returns a copy of column c in row order.
func (t *Table) Column(c int) []float64 {
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[c]
	}
	return out
}

// Parse reads a whitespace-delimited numeric grid from r. name is used in
// error messages only. Empty and blank lines are skipped; every remaining
// line must parse as float64 fields and match the first line's field count.
// NaN and Inf tokens are accepted as-is when the source contains them.
func Parse(r io.Reader, name string) (*Table, error) {
	sc := bufio.NewScanner(r)
	t := &Table{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if t.cols == 0 {
			t.cols = len(fields)
		} else if len(fields) != t.cols {
			return nil, &ParseError{Name: name, Line: lineNo,
				Msg: fmt.Sprintf("expected %d columns, got %d", t.cols, len(fields))}
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Name: name, Line: lineNo,
					Msg: fmt.Sprintf("bad number %q", f)}
			}
			row[i] = v
		}
		t.rows = append(t.rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &FileAccessError{Path: name, Err: err}
	}
	return t, nil
}

// Load reads path into a Table. It is a pure function of the file contents:
// loading the same file twice yields identical tables.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}
