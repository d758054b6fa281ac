// Package cheatsheet summarizes a rating's calendar for the schedulers:
// the rating name and date range, the base schedules per day type, the
// exception dates, and the combinations that must be removed from
// TransitMaster after import.
package cheatsheet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"rating-manager/rating"
	"rating-manager/rating/hastus"
	"rating-manager/rating/seasons"
)

const (
	takeOutSuffix   = " *** TAKE THIS OUT"
	dateRangeFormat = "Mon 1/2/2006"
	dateFormat      = "Mon 1/2"
)

// ExceptionCombination is a group of services that are activated together
// on a date: a base service, plus any garages running a different one.
type ExceptionCombination struct {
	Service string
	// GarageExceptions maps a service key to the sorted garages using it
	// instead of the base service.
	GarageExceptions map[string][]string
}

// FromGarages builds an ExceptionCombination from a garage-to-service map.
func FromGarages(garages map[string]string) ExceptionCombination {
	counts := map[string]int{}
	for _, service := range garages {
		if service != "" {
			counts[service]++
		}
	}
	services := make([]string, 0, len(counts))
	for service := range counts {
		services = append(services, service)
	}
	sort.Strings(services)

	if len(services) == 1 {
		return ExceptionCombination{Service: services[0]}
	}

	base := services[0]
	for _, service := range services[1:] {
		if counts[service] > counts[base] {
			base = service
		}
	}

	exceptions := map[string][]string{}
	for garage, service := range garages {
		if service == "" || service == base {
			continue
		}
		exceptions[service] = append(exceptions[service], garage)
	}
	for service := range exceptions {
		sort.Strings(exceptions[service])
	}
	return ExceptionCombination{Service: base, GarageExceptions: exceptions}
}

// ServiceKeys returns every service key used by the combination.
func (c ExceptionCombination) ServiceKeys() []string {
	keys := []string{c.Service}
	for service := range c.GarageExceptions {
		keys = append(keys, service)
	}
	sort.Strings(keys)
	return keys
}

// ShouldTakeOut reports whether the combination must be removed from
// TransitMaster after the import: Level 3/4 service, or weather-related
// services.
func (c ExceptionCombination) ShouldTakeOut() bool {
	for _, service := range c.ServiceKeys() {
		lower := strings.ToLower(service)
		if len(lower) >= 2 && (lower[1] == '3' || lower[1] == '4') {
			return true
		}
		if len(lower) >= 2 {
			switch lower[:2] {
			case "we", "wt", "wn":
				return true
			}
		}
	}
	return false
}

func (c ExceptionCombination) String() string {
	suffix := ""
	if c.ShouldTakeOut() {
		suffix = takeOutSuffix
	}
	if len(c.GarageExceptions) == 0 {
		return c.Service + suffix
	}

	services := make([]string, 0, len(c.GarageExceptions))
	for service := range c.GarageExceptions {
		services = append(services, service)
	}
	sort.Strings(services)

	exceptions := make([]string, 0, len(services))
	for _, service := range services {
		exceptions = append(exceptions,
			fmt.Sprintf("%s (%s)", service, strings.Join(c.GarageExceptions[service], ", ")))
	}
	return fmt.Sprintf("%s, %s%s", c.Service, strings.Join(exceptions, ", "), suffix)
}

// Equal compares two combinations by their services and exceptions.
func (c ExceptionCombination) Equal(other ExceptionCombination) bool {
	return c.String() == other.String()
}

// CheatSheet is the rating summary handed to the schedulers.
type CheatSheet struct {
	SeasonName   string
	StartDate    time.Time
	EndDate      time.Time
	WeekdayBase  ExceptionCombination
	SaturdayBase ExceptionCombination
	SundayBase   ExceptionCombination
	// DateCombos holds the dates whose combination differs from every base.
	DateCombos map[time.Time]ExceptionCombination
}

// FromRating builds the cheat sheet from the rating's CAL file.
func FromRating(r *rating.Rating) (CheatSheet, error) {
	records, err := r.Records("cal")
	if err != nil {
		return CheatSheet{}, err
	}
	return FromRecords(records), nil
}

// FromRecords builds the cheat sheet from parsed CalendarDate records.
func FromRecords(records []hastus.Record) CheatSheet {
	garageServices := map[time.Time]map[string]string{}
	dayTypes := map[time.Time]string{}
	for _, record := range records {
		calDate, ok := record.(hastus.CalendarDate)
		if !ok || calDate.ServiceKey == "" {
			continue
		}
		if garageServices[calDate.Date] == nil {
			garageServices[calDate.Date] = map[string]string{}
		}
		garageServices[calDate.Date][calDate.Garage] = calDate.ServiceKey
		dayTypes[calDate.Date] = calDate.DayType
	}

	dates := make([]time.Time, 0, len(garageServices))
	for date := range garageServices {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) == 0 {
		return CheatSheet{}
	}

	dateCombos := map[time.Time]ExceptionCombination{}
	for date, garages := range garageServices {
		dateCombos[date] = FromGarages(garages)
	}

	weekdayBase := calculateBase(dates, dateCombos, dayTypes, "Weekday")
	saturdayBase := calculateBase(dates, dateCombos, dayTypes, "Saturday")
	sundayBase := calculateBase(dates, dateCombos, dayTypes, "Sunday")

	exceptions := map[time.Time]ExceptionCombination{}
	for date, combo := range dateCombos {
		if combo.Equal(weekdayBase) || combo.Equal(saturdayBase) || combo.Equal(sundayBase) {
			continue
		}
		exceptions[date] = combo
	}

	return CheatSheet{
		SeasonName:   seasons.ForDate(dates[0]),
		StartDate:    dates[0],
		EndDate:      dates[len(dates)-1],
		WeekdayBase:  weekdayBase,
		SaturdayBase: saturdayBase,
		SundayBase:   sundayBase,
		DateCombos:   exceptions,
	}
}

// calculateBase finds the most commonly used combination for a day type.
func calculateBase(dates []time.Time, dateCombos map[time.Time]ExceptionCombination,
	dayTypes map[time.Time]string, dayType string) ExceptionCombination {
	counts := map[string]int{}
	combos := map[string]ExceptionCombination{}
	var order []string
	for _, date := range dates {
		combo := dateCombos[date]
		key := combo.String()
		if _, seen := combos[key]; !seen {
			combos[key] = combo
			order = append(order, key)
		}
		if dayTypes[date] == dayType && !combo.ShouldTakeOut() {
			counts[key]++
		}
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return combos[best]
}

func (c CheatSheet) String() string {
	// the DR1/ST1 test schedules get attached to the first free weekday
	firstWeekday := c.StartDate
	for firstWeekday.Before(c.EndDate) {
		weekday := firstWeekday.Weekday()
		if weekday >= time.Monday && weekday <= time.Friday {
			if _, overridden := c.DateCombos[firstWeekday]; !overridden {
				break
			}
		}
		firstWeekday = firstWeekday.AddDate(0, 0, 1)
	}

	type dateCombo struct {
		Date time.Time
		Text string
	}
	combos := make([]dateCombo, 0, len(c.DateCombos)+1)
	for date, combo := range c.DateCombos {
		combos = append(combos, dateCombo{date, combo.String()})
	}
	combos = append(combos, dateCombo{
		firstWeekday,
		c.WeekdayBase.String() + " DR1 ST1" + takeOutSuffix,
	})
	sort.Slice(combos, func(i, j int) bool {
		if !combos[i].Date.Equal(combos[j].Date) {
			return combos[i].Date.Before(combos[j].Date)
		}
		return combos[i].Text < combos[j].Text
	})

	var exceptions []string
	for start := 0; start < len(combos); {
		end := start
		for end < len(combos) && combos[end].Text == combos[start].Text {
			end++
		}
		var dates []time.Time
		for _, combo := range combos[start:end] {
			dates = append(dates, combo.Date)
		}
		for _, group := range dateGroups(dates) {
			first := group[0]
			last := group[len(group)-1]
			if first.Equal(last) {
				exceptions = append(exceptions,
					first.Format(dateFormat)+" "+combos[start].Text)
			} else {
				exceptions = append(exceptions,
					first.Format(dateFormat)+" - "+last.Format(dateFormat)+" "+combos[start].Text)
			}
		}
		start = end
	}

	return fmt.Sprintf(`%s %d

%s - %s

Weekday %s
Saturday %s
Sunday %s

%s
`,
		c.SeasonName, c.EndDate.Year(),
		c.StartDate.Format(dateRangeFormat), c.EndDate.Format(dateRangeFormat),
		c.WeekdayBase, c.SaturdayBase, c.SundayBase,
		strings.Join(exceptions, "\n"))
}

// dateGroups splits sorted dates into runs of adjacent days.
func dateGroups(dates []time.Time) [][]time.Time {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	var groups [][]time.Time
	for _, date := range dates {
		if len(groups) > 0 {
			current := groups[len(groups)-1]
			if date.Sub(current[len(current)-1]) == 24*time.Hour {
				groups[len(groups)-1] = append(current, date)
				continue
			}
		}
		groups = append(groups, []time.Time{date})
	}
	return groups
}
