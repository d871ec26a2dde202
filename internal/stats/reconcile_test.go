package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	overrideYear  = "2024"
	overrideMonth = "03"
)

func overrideEntries() []OverrideEntry {
	return []OverrideEntry{
		{Year: overrideYear, Month: overrideMonth, Version: "18", Downloads: 1000},
		{Year: overrideYear, Month: overrideMonth, OS: "win", Downloads: 400},
	}
}

func TestBuildOverrideMonths_PartitionsVersionAndOS(t *testing.T) {
	t.Parallel()

	months := BuildOverrideMonths(overrideEntries())

	rec := months[MonthKey{Year: overrideYear, Month: overrideMonth}]
	require.NotNil(t, rec)

	// Version rows are the authoritative monthly total; OS rows would
	// double it and must stay out of Downloads.
	assert.Equal(t, int64(1000), rec.Downloads)
	assert.Equal(t, map[string]int64{"18": 1000}, rec.VersionCounts)
	assert.Equal(t, map[string]int64{"win": 400}, rec.OSCounts)
}

func TestBuildOverrideMonths_AccumulatesAcrossRows(t *testing.T) {
	t.Parallel()

	months := BuildOverrideMonths([]OverrideEntry{
		{Year: overrideYear, Month: overrideMonth, Version: "18", Downloads: 600},
		{Year: overrideYear, Month: overrideMonth, Version: "20", Downloads: 400},
		{Year: overrideYear, Month: "04", Version: "18", Downloads: 50},
	})

	require.Len(t, months, 2)

	march := months[MonthKey{Year: overrideYear, Month: overrideMonth}]
	assert.Equal(t, int64(1000), march.Downloads)
	assert.Equal(t, map[string]int64{"18": 600, "20": 400}, march.VersionCounts)
}

func TestReconcile_ReplacesCoveredMonthWholesale(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	// API reports a daily figure inside the overridden month; it must be
	// discarded, not added.
	apiRec, ok := b.Record(overrideYear, overrideMonth, "05")
	require.True(t, ok)

	apiRec.Downloads = 50

	untouched, ok := b.Record(overrideYear, "05", "11")
	require.True(t, ok)

	untouched.Downloads = 77

	Reconcile(b, BuildOverrideMonths(overrideEntries()))

	master := b.Build()

	march := master[overrideYear][overrideMonth]
	require.Len(t, march, 1)

	rec := march[SyntheticDay]
	require.NotNil(t, rec)
	assert.Equal(t, int64(1000), rec.Downloads)
	assert.Equal(t, map[string]int64{"18": 1000}, rec.VersionCounts)
	assert.Equal(t, map[string]int64{"win": 400}, rec.OSCounts)

	// Months outside the override keep their API data.
	assert.Equal(t, int64(77), master[overrideYear]["05"]["11"].Downloads)

	// Year total reflects replacement, not addition.
	assert.Equal(t, int64(1077), RollupYear(master[overrideYear]).Downloads)
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()

	b := NewBuilder()

	rec, ok := b.Record(overrideYear, overrideMonth, "05")
	require.True(t, ok)

	rec.Downloads = 50

	months := BuildOverrideMonths(overrideEntries())

	Reconcile(b, months)
	first := RollupYear(b.Build()[overrideYear])

	Reconcile(b, months)
	second := RollupYear(b.Build()[overrideYear])

	assert.Equal(t, first, second)
}
