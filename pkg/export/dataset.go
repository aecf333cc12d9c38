// Package export renders tabular datasets as CSV or PDF downloads.
package export

import "fmt"

// Dataset is a table with a caption. Rows are positional: cell i belongs to
// Headers[i]; short rows are padded with empty cells.
type Dataset struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("dataset %q has no headers", d.Title)
	}
	for i, row := range d.Rows {
		if len(row) > len(d.Headers) {
			return fmt.Errorf("row %d has %d cells for %d headers", i, len(row), len(d.Headers))
		}
	}
	return nil
}

func (d Dataset) cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
