// Package feed fetches and normalizes the raw download feeds into partial
// daily records.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Edge rows dropped from every parsed feed: the header row and the trailing
// partial-period row the upstream always appends.
const trimmedEdgeRows = 2

// Decode reads delimited text into rows of trimmed fields. It has no
// semantic knowledge of any feed: variable field counts are allowed, blank
// lines are dropped, quoting is lenient.
func Decode(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode delimited text: %w", err)
	}

	rows := make([][]string, 0, len(records))

	for _, record := range records {
		empty := true

		for i, cell := range record {
			record[i] = strings.TrimSpace(cell)
			if record[i] != "" {
				empty = false
			}
		}

		if !empty {
			rows = append(rows, record)
		}
	}

	return rows, nil
}

// trimEdges drops the header row and the trailing partial row. Feeds with
// fewer rows than that have no data rows at all.
func trimEdges(rows [][]string) [][]string {
	if len(rows) <= trimmedEdgeRows {
		return nil
	}

	return rows[1 : len(rows)-1]
}

// parseCount coerces a cell to a non-negative count. An empty cell is an
// ordinary zero; a non-numeric or negative cell also yields zero but is
// reported as a coercion so callers can audit it. A bad cell must never
// abort a run.
func parseCount(cell string) (value int64, coerced bool) {
	if cell == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(cell, 10, 64)
	if err != nil || n < 0 {
		return 0, true
	}

	return n, false
}
