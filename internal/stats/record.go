// Package stats implements the canonical download table and its
// reconciliation and rollup logic.
package stats

import "sort"

// Key label widths for the hierarchical table.
const (
	yearLabelLen  = 4
	monthLabelLen = 2
	dayLabelLen   = 2
)

// CountryCount is one entry of a ranked country breakdown.
type CountryCount struct {
	Name      string
	Downloads int64
}

// DailyRecord holds one calendar day's telemetry. Downloads, VersionCounts
// and OSCounts are independent dimensions of the same event stream; no one
// of them is derived from another.
type DailyRecord struct {
	Downloads     int64
	VersionCounts map[string]int64
	OSCounts      map[string]int64
	CountryCounts []CountryCount
}

// NewDailyRecord creates an empty DailyRecord with initialized maps.
func NewDailyRecord() *DailyRecord {
	return &DailyRecord{
		VersionCounts: make(map[string]int64),
		OSCounts:      make(map[string]int64),
	}
}

// Clone returns a deep copy of the record.
func (r *DailyRecord) Clone() *DailyRecord {
	out := NewDailyRecord()
	out.Downloads = r.Downloads

	for k, v := range r.VersionCounts {
		out.VersionCounts[k] = v
	}

	for k, v := range r.OSCounts {
		out.OSCounts[k] = v
	}

	out.CountryCounts = append(out.CountryCounts, r.CountryCounts...)

	return out
}

// MonthlyTable maps a two-digit day label to that day's record.
// Keys need not be contiguous or complete.
type MonthlyTable map[string]*DailyRecord

// YearlyTable maps a two-digit month label to a MonthlyTable.
type YearlyTable map[string]MonthlyTable

// MasterTable maps a four-digit year label to a YearlyTable. It is built
// once per run and is read-only after reconciliation completes.
type MasterTable map[string]YearlyTable

// MonthKey identifies one (year, month) slot in a MasterTable.
type MonthKey struct {
	Year  string
	Month string
}

// Builder accumulates feed contributions into a MasterTable. It is threaded
// explicitly through each normalizer pass so merge order stays visible and
// testable; Build freezes the result.
type Builder struct {
	table MasterTable
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{table: make(MasterTable)}
}

// Record returns the DailyRecord for (year, month, day), creating the
// intermediate tables and the record on first access. Labels with the wrong
// width are rejected so malformed dates cannot open stray table slots.
func (b *Builder) Record(year, month, day string) (*DailyRecord, bool) {
	if len(year) != yearLabelLen || len(month) != monthLabelLen || len(day) != dayLabelLen {
		return nil, false
	}

	yt, ok := b.table[year]
	if !ok {
		yt = make(YearlyTable)
		b.table[year] = yt
	}

	mt, ok := yt[month]
	if !ok {
		mt = make(MonthlyTable)
		yt[month] = mt
	}

	rec, ok := mt[day]
	if !ok {
		rec = NewDailyRecord()
		mt[day] = rec
	}

	return rec, true
}

// ReplaceMonth substitutes the entire MonthlyTable for (year, month).
// Used by the reconciler; never merges with the previous contents.
func (b *Builder) ReplaceMonth(key MonthKey, month MonthlyTable) {
	yt, ok := b.table[key.Year]
	if !ok {
		yt = make(YearlyTable)
		b.table[key.Year] = yt
	}

	yt[key.Month] = month
}

// Build returns the accumulated MasterTable. Callers must not mutate the
// result; the build phase is over.
func (b *Builder) Build() MasterTable {
	return b.table
}

// RankCountries sums per-country downloads preserving first-seen order, then
// sorts descending by count. The sort is stable, so ties keep the order in
// which the countries were first encountered.
func RankCountries(entries []CountryCount) []CountryCount {
	totals := make(map[string]int64, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		if _, seen := totals[e.Name]; !seen {
			order = append(order, e.Name)
		}

		totals[e.Name] += e.Downloads
	}

	ranked := make([]CountryCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, CountryCount{Name: name, Downloads: totals[name]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Downloads > ranked[j].Downloads
	})

	return ranked
}

// SortedKeys returns the map keys in ascending label order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
