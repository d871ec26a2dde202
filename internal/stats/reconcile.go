package stats

// SyntheticDay is the day label under which monthly-granularity override
// data is stored inside the day-keyed table.
const SyntheticDay = "01"

// OverrideEntry is one raw row of the override feed, already typed. Exactly
// one of Version and OS is set: the feed partitions the same event count
// into version-tagged and OS-tagged rows.
type OverrideEntry struct {
	Year      string
	Month     string
	Version   string
	OS        string
	Downloads int64
}

// BuildOverrideMonths folds typed override rows into one synthetic record
// per (year, month). Downloads accumulate only from version-tagged rows:
// the version partition is the authoritative monthly total, and adding the
// OS partition on top would double it. OS-tagged rows contribute to
// OSCounts only.
func BuildOverrideMonths(entries []OverrideEntry) map[MonthKey]*DailyRecord {
	months := make(map[MonthKey]*DailyRecord)

	for _, e := range entries {
		key := MonthKey{Year: e.Year, Month: e.Month}

		rec, ok := months[key]
		if !ok {
			rec = NewDailyRecord()
			months[key] = rec
		}

		switch {
		case e.Version != "":
			rec.Downloads += e.Downloads
			rec.VersionCounts[e.Version] += e.Downloads
		case e.OS != "":
			rec.OSCounts[e.OS] += e.Downloads
		}
	}

	return months
}

// Reconcile merges monthly override records into the builder. Every month
// the override covers is replaced wholesale with a single synthetic-day
// record; the override's monthly total must never be added on top of the
// API's daily figures for the same period. Months the override does not
// cover keep their API daily data untouched. Replacement makes the
// operation idempotent.
func Reconcile(b *Builder, months map[MonthKey]*DailyRecord) {
	for key, rec := range months {
		b.ReplaceMonth(key, MonthlyTable{SyntheticDay: rec.Clone()})
	}
}
