package feed

import (
	"fmt"

	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

// FeedAudits maps a feed name to its row audit.
type FeedAudits map[string]RowAudit

// Total returns the audits folded into one.
func (fa FeedAudits) Total() RowAudit {
	var total RowAudit
	for _, audit := range fa {
		total.Add(audit)
	}

	return total
}

// BuildTable runs the four normalizer passes over the raw feeds in a fixed
// order, each contributing its disjoint subset of fields to the builder.
// Contributions for the same day merge field-wise; nothing is replaced at
// this stage.
func BuildTable(raw *RawFeeds, layouts *LayoutSet) (*stats.Builder, FeedAudits, error) {
	versionLayout, err := layouts.Feed(LayoutVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("build table: %w", err)
	}

	osLayout, err := layouts.Feed(LayoutOS)
	if err != nil {
		return nil, nil, fmt.Errorf("build table: %w", err)
	}

	b := stats.NewBuilder()
	audits := FeedAudits{
		"totals":    NormalizeTotals(raw.Totals, b),
		"versions":  NormalizeByLayout(raw.Versions, versionLayout, b, VersionCounts),
		"os":        NormalizeByLayout(raw.OS, osLayout, b, OSCounts),
		"countries": NormalizeCountries(raw.Countries, b),
	}

	return b, audits, nil
}
