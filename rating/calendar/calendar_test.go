package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rating-manager/rating/hastus"
)

func TestWriteCSV(t *testing.T) {
	records, err := hastus.ParseLines([]string{
		"DAT;20122020;albny;011;Sunday",
		"DAT;20122020;cabot;016;Sunday",
		"DAT;21122020;albny;hba21011;Weekday",
		"DAT;21122020;cabot;;Weekday",
	})
	require.NoError(t, err)

	table := FromRecords(records)
	assert.Equal(t, []string{"2020-12-20", "2020-12-21"}, table.Dates)
	assert.Equal(t, []string{"albny", "cabot"}, table.Garages)

	var out strings.Builder
	require.NoError(t, table.WriteCSV(&out))
	assert.Equal(t,
		"date,albny,cabot\n"+
			"2020-12-20,011,016\n"+
			"2020-12-21,011,\n",
		out.String())
}
