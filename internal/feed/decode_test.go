package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_TrimsCellsAndDropsBlankLines(t *testing.T) {
	t.Parallel()

	input := "date,downloads\n\n2024-03-01, 100 \n2024-03-02,200\n"

	rows, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"2024-03-01", "100"}, rows[1])
}

func TestDecode_VariableFieldCounts(t *testing.T) {
	t.Parallel()

	input := "a,b,c\nx,y\np,q,r,s\n"

	rows, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Len(t, rows[1], 2)
	assert.Len(t, rows[2], 4)
}

func TestTrimEdges_DropsHeaderAndTrailingRow(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"date", "downloads"},
		{"2024-03-01", "100"},
		{"2024-03-02", "200"},
		{"2024-03-03", "5"}, // partial period.
	}

	trimmed := trimEdges(rows)
	require.Len(t, trimmed, 2)

	assert.Equal(t, "2024-03-01", trimmed[0][0])
	assert.Equal(t, "2024-03-02", trimmed[1][0])
}

func TestTrimEdges_TooFewRows(t *testing.T) {
	t.Parallel()

	assert.Nil(t, trimEdges(nil))
	assert.Nil(t, trimEdges([][]string{{"header"}}))
	assert.Nil(t, trimEdges([][]string{{"header"}, {"partial"}}))
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cell    string
		want    int64
		coerced bool
	}{
		{name: "plain number", cell: "1234", want: 1234, coerced: false},
		{name: "empty cell is zero", cell: "", want: 0, coerced: false},
		{name: "non-numeric coerces", cell: "abc", want: 0, coerced: true},
		{name: "negative coerces", cell: "-5", want: 0, coerced: true},
		{name: "float coerces", cell: "1.5", want: 0, coerced: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, coerced := parseCount(tc.cell)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.coerced, coerced)
		})
	}
}
