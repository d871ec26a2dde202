package stats

// AggregateStats is the rolled-up form of a month or a year: the same counts
// as a DailyRecord but summed across the covered period, with the country
// breakdown materialized as a ranked sequence.
type AggregateStats struct {
	Downloads     int64
	VersionCounts map[string]int64
	OSCounts      map[string]int64
	CountryCounts []CountryCount
}

// Share returns count as a percentage of the period's download total.
// A zero period total yields 0 rather than NaN; "no data" renders as an
// empty share. No rounding happens here, presentation rounds.
func (a AggregateStats) Share(count int64) float64 {
	if a.Downloads == 0 {
		return 0
	}

	return float64(count) / float64(a.Downloads) * 100
}

// accumulator folds day- or month-level counts into one aggregate. Both
// rollup levels use the same fold, which is what makes the reduction
// associative: folding days directly or folding month aggregates must land
// on the same result.
type accumulator struct {
	downloads int64
	versions  map[string]int64
	oses      map[string]int64
	countries []CountryCount
}

func newAccumulator() *accumulator {
	return &accumulator{
		versions: make(map[string]int64),
		oses:     make(map[string]int64),
	}
}

func (acc *accumulator) add(downloads int64, versions, oses map[string]int64, countries []CountryCount) {
	acc.downloads += downloads

	for k, v := range versions {
		acc.versions[k] += v
	}

	for k, v := range oses {
		acc.oses[k] += v
	}

	acc.countries = append(acc.countries, countries...)
}

func (acc *accumulator) finalize() AggregateStats {
	return AggregateStats{
		Downloads:     acc.downloads,
		VersionCounts: acc.versions,
		OSCounts:      acc.oses,
		CountryCounts: RankCountries(acc.countries),
	}
}

// RollupMonth reduces a month's daily records into one aggregate. Days are
// visited in ascending label order so country first-seen tie-breaks are
// deterministic; the per-day rankings are discarded and the summed counts
// are re-ranked.
func RollupMonth(month MonthlyTable) AggregateStats {
	acc := newAccumulator()

	for _, day := range SortedKeys(month) {
		rec := month[day]
		acc.add(rec.Downloads, rec.VersionCounts, rec.OSCounts, rec.CountryCounts)
	}

	return acc.finalize()
}

// RollupYear reduces a year to one aggregate by re-running the same fold
// over the month-level aggregates, not by re-scanning days.
func RollupYear(year YearlyTable) AggregateStats {
	acc := newAccumulator()

	for _, month := range SortedKeys(year) {
		ms := RollupMonth(year[month])
		acc.add(ms.Downloads, ms.VersionCounts, ms.OSCounts, ms.CountryCounts)
	}

	return acc.finalize()
}
