package stats

// YearCheck cross-checks one year's rollup against the override feed's own
// row sums. MasterTotal sums the version-tagged rows (the authoritative
// monthly floor), ReferenceTotal sums the OS-tagged rows, AggregateTotal is
// the rollup result, and Delta = AggregateTotal - MasterTotal is the
// download volume attributable to days the override does not cover.
type YearCheck struct {
	Year           string
	MasterTotal    int64
	ReferenceTotal int64
	AggregateTotal int64
	Delta          int64
}

// Consistent reports whether the aggregate total at least reaches the known
// monthly floor. A negative delta means the rollup produced less than the
// override feed already accounts for and must be flagged.
func (c YearCheck) Consistent() bool {
	return c.Delta >= 0
}

// ValidateYears recomputes per-year totals from raw override rows and
// compares them against the rollup of each year present in the table.
// Results are ordered by ascending year label.
func ValidateYears(master MasterTable, entries []OverrideEntry) []YearCheck {
	masterTotals := make(map[string]int64)
	referenceTotals := make(map[string]int64)

	for _, e := range entries {
		switch {
		case e.Version != "":
			masterTotals[e.Year] += e.Downloads
		case e.OS != "":
			referenceTotals[e.Year] += e.Downloads
		}
	}

	checks := make([]YearCheck, 0, len(master))

	for _, year := range SortedKeys(master) {
		agg := RollupYear(master[year])

		check := YearCheck{
			Year:           year,
			MasterTotal:    masterTotals[year],
			ReferenceTotal: referenceTotals[year],
			AggregateTotal: agg.Downloads,
		}
		check.Delta = check.AggregateTotal - check.MasterTotal

		checks = append(checks, check)
	}

	return checks
}
