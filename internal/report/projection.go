// Package report projects aggregated download statistics into chart series
// and renders the HTML report and console summary.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

// Presentation rounding for percentage series.
const (
	percentPrecision = 100 // two decimal places.
	monthsPerYear    = 12
)

// YearPoint pairs a year label with that year's rollup.
type YearPoint struct {
	Year  string
	Stats stats.AggregateStats
}

// MonthPoint pairs a month label with that month's rollup.
type MonthPoint struct {
	Month string
	Stats stats.AggregateStats
}

// YearlySeries rolls every year of the table up, ordered by ascending year
// label.
func YearlySeries(master stats.MasterTable) []YearPoint {
	points := make([]YearPoint, 0, len(master))

	for _, year := range stats.SortedKeys(master) {
		points = append(points, YearPoint{Year: year, Stats: stats.RollupYear(master[year])})
	}

	return points
}

// MonthlySeries rolls one year up month by month into twelve fixed slots.
// Months absent from the table yield an empty aggregate, so chart axes stay
// aligned across years.
func MonthlySeries(year stats.YearlyTable) []MonthPoint {
	points := make([]MonthPoint, 0, monthsPerYear)

	for m := 1; m <= monthsPerYear; m++ {
		label := monthLabel(m)

		var agg stats.AggregateStats
		if mt, ok := year[label]; ok {
			agg = stats.RollupMonth(mt)
		}

		points = append(points, MonthPoint{Month: label, Stats: agg})
	}

	return points
}

func monthLabel(m int) string {
	return fmt.Sprintf("%02d", m)
}

// CountPicker selects one histogram dimension of an aggregate.
type CountPicker func(stats.AggregateStats) map[string]int64

// VersionMix selects the version histogram.
func VersionMix(agg stats.AggregateStats) map[string]int64 { return agg.VersionCounts }

// OSMix selects the OS histogram.
func OSMix(agg stats.AggregateStats) map[string]int64 { return agg.OSCounts }

// TopKeys ranks histogram labels by their total count across all points,
// descending, ties broken by label, and returns at most n of them. Used to
// pick the legend for share-trend charts.
func TopKeys(points []YearPoint, pick CountPicker, n int) []string {
	totals := make(map[string]int64)

	for _, p := range points {
		for k, v := range pick(p.Stats) {
			totals[k] += v
		}
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if totals[keys[i]] != totals[keys[j]] {
			return totals[keys[i]] > totals[keys[j]]
		}

		return keys[i] < keys[j]
	})

	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}

	return keys
}

// ShareTrend computes, for each key, the percentage series of that key's
// count against each period's download total. Values are rounded to two
// decimals here; the aggregator itself never rounds.
func ShareTrend(points []YearPoint, pick CountPicker, keys []string) map[string][]float64 {
	trend := make(map[string][]float64, len(keys))

	for _, key := range keys {
		series := make([]float64, len(points))

		for i, p := range points {
			series[i] = roundPercent(p.Stats.Share(pick(p.Stats)[key]))
		}

		trend[key] = series
	}

	return trend
}

func roundPercent(v float64) float64 {
	return math.Round(v*percentPrecision) / percentPrecision
}

// TopCountries returns the first n entries of an aggregate's country
// ranking. The ranking is already ordered; this only truncates.
func TopCountries(agg stats.AggregateStats, n int) []stats.CountryCount {
	if n > 0 && len(agg.CountryCounts) > n {
		return agg.CountryCounts[:n]
	}

	return agg.CountryCounts
}
