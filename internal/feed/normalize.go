package feed

import (
	"strings"

	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

// Date cell layout shared by all remote feeds: YYYY-MM-DD in column 0.
const (
	dateColumn   = 0
	dateParts    = 3
	datePartYear = 0
	datePartMon  = 1
	datePartDay  = 2
)

// Minimum widths for feeds without a configured layout.
const (
	totalsColumns   = 2
	totalsCountCol  = 1
	countryMinitems = 2
)

// RowAudit classifies what happened to each input row, so a caller can
// report how much of a feed was discarded instead of absorbing it silently.
type RowAudit struct {
	Accepted     int
	SkippedShort int
	SkippedDate  int
	Coerced      int
}

// Add folds another audit into this one.
func (a *RowAudit) Add(other RowAudit) {
	a.Accepted += other.Accepted
	a.SkippedShort += other.SkippedShort
	a.SkippedDate += other.SkippedDate
	a.Coerced += other.Coerced
}

// splitDate parses a YYYY-MM-DD cell into its labels.
func splitDate(cell string) (year, month, day string, ok bool) {
	parts := strings.Split(cell, "-")
	if len(parts) != dateParts {
		return "", "", "", false
	}

	return parts[datePartYear], parts[datePartMon], parts[datePartDay], true
}

// NormalizeTotals folds the totals feed into the builder, contributing the
// Downloads field only.
func NormalizeTotals(rows [][]string, b *stats.Builder) RowAudit {
	var audit RowAudit

	for _, row := range trimEdges(rows) {
		if len(row) < totalsColumns {
			audit.SkippedShort++

			continue
		}

		rec, ok := dayRecord(b, row, &audit)
		if !ok {
			continue
		}

		count, coerced := parseCount(row[totalsCountCol])
		if coerced {
			audit.Coerced++
		}

		rec.Downloads += count
		audit.Accepted++
	}

	return audit
}

// NormalizeByLayout folds a column-mapped feed (version or OS split) into
// the builder. Only columns present in the layout contribute; missing cells
// default to zero. Rows narrower than the layout's minimum are skipped, the
// usual sign of an upstream layout change.
func NormalizeByLayout(rows [][]string, layout Layout, b *stats.Builder, pick func(*stats.DailyRecord) map[string]int64) RowAudit {
	var audit RowAudit

	for _, row := range trimEdges(rows) {
		if len(row) < layout.MinColumns {
			audit.SkippedShort++

			continue
		}

		rec, ok := dayRecord(b, row, &audit)
		if !ok {
			continue
		}

		counts := pick(rec)

		for col, label := range layout.Columns {
			if col >= len(row) {
				continue
			}

			count, coerced := parseCount(row[col])
			if coerced {
				audit.Coerced++
			}

			counts[label] += count
		}

		audit.Accepted++
	}

	return audit
}

// NormalizeCountries folds the country feed into the builder. Each data
// column is paired with the header row's country name, coerced to an
// integer, then the day's breakdown is ranked descending.
func NormalizeCountries(rows [][]string, b *stats.Builder) RowAudit {
	var audit RowAudit

	if len(rows) == 0 {
		return audit
	}

	header := rows[0]

	for _, row := range trimEdges(rows) {
		if len(row) < countryMinitems {
			audit.SkippedShort++

			continue
		}

		rec, ok := dayRecord(b, row, &audit)
		if !ok {
			continue
		}

		entries := make([]stats.CountryCount, 0, len(row)-1)

		for col := 1; col < len(row) && col < len(header); col++ {
			count, coerced := parseCount(row[col])
			if coerced {
				audit.Coerced++
			}

			entries = append(entries, stats.CountryCount{Name: header[col], Downloads: count})
		}

		rec.CountryCounts = stats.RankCountries(entries)
		audit.Accepted++
	}

	return audit
}

func dayRecord(b *stats.Builder, row []string, audit *RowAudit) (*stats.DailyRecord, bool) {
	year, month, day, ok := splitDate(row[dateColumn])
	if !ok {
		audit.SkippedDate++

		return nil, false
	}

	rec, ok := b.Record(year, month, day)
	if !ok {
		audit.SkippedDate++

		return nil, false
	}

	return rec, true
}

// VersionCounts selects the version histogram of a record, for use with
// NormalizeByLayout.
func VersionCounts(rec *stats.DailyRecord) map[string]int64 { return rec.VersionCounts }

// OSCounts selects the OS histogram of a record, for use with
// NormalizeByLayout.
func OSCounts(rec *stats.DailyRecord) map[string]int64 { return rec.OSCounts }
