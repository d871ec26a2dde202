package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

func totalsRows() [][]string {
	return [][]string{
		{"date", "downloads"},
		{"2024-03-01", "100"},
		{"2024-03-02", "abc"},
		{"bad-date"},
		{"2024-03-04", "40"},
		{"2024-03-05", "1"}, // trailing partial row, trimmed.
	}
}

func TestNormalizeTotals(t *testing.T) {
	t.Parallel()

	b := stats.NewBuilder()
	audit := NormalizeTotals(totalsRows(), b)

	master := b.Build()
	march := master["2024"]["03"]
	require.NotNil(t, march)

	assert.Equal(t, int64(100), march["01"].Downloads)
	assert.Equal(t, int64(40), march["04"].Downloads)

	// "abc" coerces to zero, it does not raise and it does not skip.
	assert.Equal(t, int64(0), march["02"].Downloads)

	// Header and trailing rows never land in the table.
	_, hasTrailing := march["05"]
	assert.False(t, hasTrailing)

	assert.Equal(t, 3, audit.Accepted)
	assert.Equal(t, 1, audit.SkippedShort)
	assert.Equal(t, 1, audit.Coerced)
}

func TestNormalizeTotals_ShortRowLeavesPriorStateUntouched(t *testing.T) {
	t.Parallel()

	b := stats.NewBuilder()

	rec, ok := b.Record("2024", "03", "01")
	require.True(t, ok)

	rec.Downloads = 7

	rows := [][]string{
		{"date", "downloads"},
		{"2024-03-01"}, // short: skipped entirely.
		{"2024-03-09", "1"},
	}

	audit := NormalizeTotals(rows, b)

	assert.Equal(t, int64(7), b.Build()["2024"]["03"]["01"].Downloads)
	assert.Equal(t, 1, audit.SkippedShort)
	assert.Zero(t, audit.Accepted)
}

func TestNormalizeByLayout_Versions(t *testing.T) {
	t.Parallel()

	layout := Layout{
		MinColumns: 3,
		Columns:    map[int]string{1: "18", 2: "20"},
	}

	rows := [][]string{
		{"date", "v18", "v20", "ignored"},
		{"2024-03-01", "60", "40", "999"},
		{"2024-03-02", "", "10"},
		{"2024-03-03", "1", "1"},
	}

	b := stats.NewBuilder()
	audit := NormalizeByLayout(rows, layout, b, VersionCounts)

	march := b.Build()["2024"]["03"]
	require.NotNil(t, march)

	// Unmapped column 3 is ignored; missing cells default to zero.
	assert.Equal(t, map[string]int64{"18": 60, "20": 40}, march["01"].VersionCounts)
	assert.Equal(t, map[string]int64{"18": 0, "20": 10}, march["02"].VersionCounts)
	assert.Zero(t, march["01"].Downloads)

	assert.Equal(t, 2, audit.Accepted)
}

func TestNormalizeByLayout_EnforcesMinColumns(t *testing.T) {
	t.Parallel()

	layout := Layout{MinColumns: 4, Columns: map[int]string{1: "linux", 3: "win"}}

	rows := [][]string{
		{"date", "linux", "osx", "win"},
		{"2024-03-01", "5", "3"}, // narrower than the layout: upstream changed.
		{"2024-03-02", "5", "3", "2"},
		{"2024-03-03", "1", "1", "1"},
	}

	b := stats.NewBuilder()
	audit := NormalizeByLayout(rows, layout, b, OSCounts)

	assert.Equal(t, 1, audit.SkippedShort)
	assert.Equal(t, 1, audit.Accepted)
	assert.Equal(t, map[string]int64{"linux": 5, "win": 2}, b.Build()["2024"]["03"]["02"].OSCounts)
}

func TestNormalizeCountries(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"date", "US", "DE", "FR"},
		{"2024-03-01", "10", "30", "x"},
		{"2024-03-02", "1", "1", "1"},
	}

	b := stats.NewBuilder()
	audit := NormalizeCountries(rows, b)

	rec := b.Build()["2024"]["03"]["01"]
	require.NotNil(t, rec)
	require.Len(t, rec.CountryCounts, 3)

	// Ranked descending; the non-numeric FR cell coerces to zero.
	assert.Equal(t, stats.CountryCount{Name: "DE", Downloads: 30}, rec.CountryCounts[0])
	assert.Equal(t, stats.CountryCount{Name: "US", Downloads: 10}, rec.CountryCounts[1])
	assert.Equal(t, stats.CountryCount{Name: "FR", Downloads: 0}, rec.CountryCounts[2])

	assert.Equal(t, 1, audit.Accepted)
	assert.Equal(t, 1, audit.Coerced)
}

func TestFieldWiseMergeAcrossFeeds(t *testing.T) {
	t.Parallel()

	b := stats.NewBuilder()

	NormalizeTotals([][]string{
		{"date", "downloads"},
		{"2024-03-01", "100"},
		{"2024-03-02", "1"},
	}, b)

	layout := Layout{MinColumns: 2, Columns: map[int]string{1: "18"}}
	NormalizeByLayout([][]string{
		{"date", "v18"},
		{"2024-03-01", "90"},
		{"2024-03-02", "1"},
	}, layout, b, VersionCounts)

	rec := b.Build()["2024"]["03"]["01"]
	require.NotNil(t, rec)

	// Later feeds add fields alongside earlier ones, they do not replace.
	assert.Equal(t, int64(100), rec.Downloads)
	assert.Equal(t, map[string]int64{"18": 90}, rec.VersionCounts)
}

func TestRowAuditAdd(t *testing.T) {
	t.Parallel()

	a := RowAudit{Accepted: 1, SkippedShort: 2}
	a.Add(RowAudit{Accepted: 3, SkippedDate: 4, Coerced: 5})

	assert.Equal(t, RowAudit{Accepted: 4, SkippedShort: 2, SkippedDate: 4, Coerced: 5}, a)
}
