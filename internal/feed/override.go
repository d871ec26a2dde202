package feed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

// Override file layout: period (YYYY-MM), version label (empty for OS
// rows), OS label (empty for version rows), downloads.
const (
	overrideColumns     = 4
	overridePeriodCol   = 0
	overrideVersionCol  = 1
	overrideOSCol       = 2
	overrideCountCol    = 3
	overridePeriodParts = 2
)

// OverrideData is the parsed local override feed: the synthetic per-month
// records the reconciler substitutes into the master table, plus the raw
// typed rows the validator recomputes totals from.
type OverrideData struct {
	Months  map[stats.MonthKey]*stats.DailyRecord
	Entries []stats.OverrideEntry
	Audit   RowAudit
}

// LoadOverride reads and parses the override file at path. A missing or
// unreadable file returns ErrOverrideMissing; the caller downgrades that to
// a warning and proceeds with API data only.
func LoadOverride(path string) (*OverrideData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOverrideMissing, path, err)
	}
	defer f.Close()

	data, err := ParseOverride(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOverrideMissing, path, err)
	}

	return data, nil
}

// ParseOverride decodes override rows from delimited text. Rows with fewer
// than four columns or a malformed period are skipped and audited;
// non-numeric download counts coerce to zero.
func ParseOverride(r io.Reader) (*OverrideData, error) {
	rows, err := Decode(r)
	if err != nil {
		return nil, err
	}

	data := &OverrideData{}

	for _, row := range rows {
		if len(row) < overrideColumns {
			data.Audit.SkippedShort++

			continue
		}

		year, month, ok := splitPeriod(row[overridePeriodCol])
		if !ok {
			data.Audit.SkippedDate++

			continue
		}

		// A row without a downloads cell carries no information; skip it
		// rather than record a synthetic zero.
		if row[overrideCountCol] == "" {
			data.Audit.SkippedShort++

			continue
		}

		count, coerced := parseCount(row[overrideCountCol])
		if coerced {
			data.Audit.Coerced++
		}

		data.Entries = append(data.Entries, stats.OverrideEntry{
			Year:      year,
			Month:     month,
			Version:   row[overrideVersionCol],
			OS:        row[overrideOSCol],
			Downloads: count,
		})
		data.Audit.Accepted++
	}

	data.Months = stats.BuildOverrideMonths(data.Entries)

	return data, nil
}

// splitPeriod parses a YYYY-MM cell into year and month labels.
func splitPeriod(cell string) (year, month string, ok bool) {
	parts := strings.Split(cell, "-")
	if len(parts) != overridePeriodParts || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}
