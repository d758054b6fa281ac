package seasons

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortKeyForExport(t *testing.T) {
	folders := []string{
		"Spring 2021 AVL Data",
		"Winter 2021 AVL Data",
		"Fall 2020 AVL Data",
		"Summer 2020 AVL Data",
	}
	sort.Slice(folders, func(i, j int) bool {
		return SortKeyForExport(folders[i]).Less(SortKeyForExport(folders[j]))
	})
	assert.Equal(t, []string{
		"Summer 2020 AVL Data",
		"Fall 2020 AVL Data",
		"Winter 2021 AVL Data",
		"Spring 2021 AVL Data",
	}, folders)
}

func TestSortKeyForExportUnrecognized(t *testing.T) {
	key := SortKeyForExport("archive")
	assert.Equal(t, SortKey{Rest: "archive"}, key)
	assert.True(t, key.Less(SortKeyForExport("Fall 2020 AVL Data")))
}

func TestForDate(t *testing.T) {
	cases := []struct {
		date   time.Time
		season string
	}{
		{time.Date(2020, 8, 30, 0, 0, 0, 0, time.UTC), "Fall"},
		{time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC), "Fall"},
		{time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), "Spring"},
		{time.Date(2020, 4, 6, 0, 0, 0, 0, time.UTC), "Spring"},
		{time.Date(2020, 6, 21, 0, 0, 0, 0, time.UTC), "Summer"},
		{time.Date(2020, 12, 20, 0, 0, 0, 0, time.UTC), "Winter"},
		{time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC), "Winter"},
	}
	for _, c := range cases {
		assert.Equal(t, c.season, ForDate(c.date), c.date.Format(time.DateOnly))
	}
}
