// Package input parses the uploaded compound table: comma-separated rows of
// identifier, source URL and target label, with no header line.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
)

// TableError marks a fatal input-table failure: nothing is processed when it
// is returned.
type TableError struct {
	Line int
	Err  error
}

func (e *TableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("input table line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("input table: %v", e.Err)
}

func (e *TableError) Unwrap() error { return e.Err }

// ReadTable parses every row of r. Any malformed record aborts the read; a
// partially parsed table is never returned.
func ReadTable(r io.Reader) ([]domain.CompoundRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var rows []domain.CompoundRow
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if pe, ok := err.(*csv.ParseError); ok {
				return nil, &TableError{Line: pe.Line, Err: pe.Err}
			}
			return nil, &TableError{Line: line, Err: err}
		}
		rows = append(rows, domain.CompoundRow{
			Identifier: strings.TrimSpace(record[0]),
			SourceURL:  strings.TrimSpace(record[1]),
			Target:     strings.TrimSpace(record[2]),
		})
	}
	return rows, nil
}

// ReadTableFile is a convenience wrapper around ReadTable.
func ReadTableFile(path string) ([]domain.CompoundRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TableError{Err: err}
	}
	defer f.Close()
	return ReadTable(f)
}
