package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testYear  = "2024"
	testMonth = "03"
	testDay   = "05"
)

func TestBuilderRecord_CreatesOnFirstAccess(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	rec, ok := b.Record(testYear, testMonth, testDay)
	require.True(t, ok)
	require.NotNil(t, rec)

	rec.Downloads = 50

	again, ok := b.Record(testYear, testMonth, testDay)
	require.True(t, ok)
	assert.Same(t, rec, again)
	assert.Equal(t, int64(50), again.Downloads)
}

func TestBuilderRecord_RejectsMalformedLabels(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	cases := []struct {
		name  string
		year  string
		month string
		day   string
	}{
		{name: "short year", year: "24", month: testMonth, day: testDay},
		{name: "long month", year: testYear, month: "003", day: testDay},
		{name: "empty day", year: testYear, month: testMonth, day: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, ok := b.Record(tc.year, tc.month, tc.day)
			assert.False(t, ok)
		})
	}

	assert.Empty(t, b.Build())
}

func TestBuilderReplaceMonth_Substitutes(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	rec, ok := b.Record(testYear, testMonth, testDay)
	require.True(t, ok)

	rec.Downloads = 50

	replacement := MonthlyTable{SyntheticDay: &DailyRecord{Downloads: 1000}}
	b.ReplaceMonth(MonthKey{Year: testYear, Month: testMonth}, replacement)

	month := b.Build()[testYear][testMonth]
	require.Len(t, month, 1)
	assert.Equal(t, int64(1000), month[SyntheticDay].Downloads)
}

func TestRankCountries_StableTieBreak(t *testing.T) {
	t.Parallel()

	// B and A tie at 100; B was seen first and must stay ahead.
	ranked := RankCountries([]CountryCount{
		{Name: "B", Downloads: 100},
		{Name: "A", Downloads: 100},
		{Name: "C", Downloads: 50},
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Name)
	assert.Equal(t, "A", ranked[1].Name)
	assert.Equal(t, "C", ranked[2].Name)
}

func TestRankCountries_SumsRepeatedNames(t *testing.T) {
	t.Parallel()

	ranked := RankCountries([]CountryCount{
		{Name: "US", Downloads: 10},
		{Name: "DE", Downloads: 30},
		{Name: "US", Downloads: 25},
	})

	require.Len(t, ranked, 2)
	assert.Equal(t, CountryCount{Name: "US", Downloads: 35}, ranked[0])
	assert.Equal(t, CountryCount{Name: "DE", Downloads: 30}, ranked[1])
}

func TestDailyRecordClone_Independent(t *testing.T) {
	t.Parallel()

	rec := NewDailyRecord()
	rec.Downloads = 7
	rec.VersionCounts["18"] = 7
	rec.CountryCounts = []CountryCount{{Name: "US", Downloads: 7}}

	clone := rec.Clone()
	clone.VersionCounts["18"] = 99
	clone.CountryCounts[0].Downloads = 99

	assert.Equal(t, int64(7), rec.VersionCounts["18"])
	assert.Equal(t, int64(7), rec.CountryCounts[0].Downloads)
}
