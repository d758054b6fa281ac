// Package seasons helps with the 4 HASTUS rating seasons.
package seasons

import (
	"strconv"
	"strings"
	"time"
)

// Seasons in rating order within a year.
var Seasons = []string{"Winter", "Spring", "Summer", "Fall"}

// SortKey is a sortable key for a HASTUS export folder name.
type SortKey struct {
	Year   int
	Season int
	Rest   string
}

// Less orders SortKeys by year, then season, then the remaining text.
func (k SortKey) Less(other SortKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Season != other.Season {
		return k.Season < other.Season
	}
	return k.Rest < other.Rest
}

// SortKeyForExport breaks a HASTUS export folder name (which looks like
// "Winter 2021 AVL Data") into a sortable key. Names that don't start with
// a season sort first.
func SortKeyForExport(folder string) SortKey {
	for index, season := range Seasons {
		if !strings.HasPrefix(folder, season) {
			continue
		}
		if len(folder) < len(season)+5 {
			continue
		}
		year, err := strconv.Atoi(folder[len(season)+1 : len(season)+5])
		if err != nil {
			continue
		}
		rest := ""
		if len(folder) > len(season)+6 {
			rest = folder[len(season)+6:]
		}
		return SortKey{Year: year, Season: index, Rest: rest}
	}
	return SortKey{Rest: folder}
}

// ForDate returns the season, given the start date of the rating.
func ForDate(date time.Time) string {
	month := date.Month()
	switch {
	case month < time.March || month == time.December:
		return "Winter"
	case month < time.June:
		return "Spring"
	case month < time.August:
		return "Summer"
	default:
		return "Fall"
	}
}
