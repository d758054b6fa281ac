// Package calendar renders the per-garage schedule calendar for a rating.
package calendar

import (
	"encoding/csv"
	"io"
	"sort"
	"time"

	"rating-manager/rating"
	"rating-manager/rating/hastus"
)

type dateGarage struct {
	Date   string
	Garage string
}

// Table is the schedules-per-garage calendar: one row per date, one
// column per garage, each cell holding the active service key.
type Table struct {
	Dates    []string
	Garages  []string
	Services map[dateGarage]string
}

// FromRating builds the calendar from the rating's CAL file.
func FromRating(r *rating.Rating) (*Table, error) {
	records, err := r.Records("cal")
	if err != nil {
		return nil, err
	}
	return FromRecords(records), nil
}

// FromRecords builds the calendar from parsed CalendarDate records.
func FromRecords(records []hastus.Record) *Table {
	table := &Table{Services: map[dateGarage]string{}}
	dates := map[string]bool{}
	garages := map[string]bool{}

	for _, record := range records {
		calDate, ok := record.(hastus.CalendarDate)
		if !ok {
			continue
		}
		date := calDate.Date.Format(time.DateOnly)
		dates[date] = true
		garages[calDate.Garage] = true
		table.Services[dateGarage{date, calDate.Garage}] = calDate.ServiceKey
	}

	for date := range dates {
		table.Dates = append(table.Dates, date)
	}
	sort.Strings(table.Dates)
	for garage := range garages {
		table.Garages = append(table.Garages, garage)
	}
	sort.Strings(table.Garages)
	return table
}

// WriteCSV writes the calendar as CSV, one row per date.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := append([]string{"date"}, t.Garages...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, date := range t.Dates {
		row := make([]string, 0, len(t.Garages)+1)
		row = append(row, date)
		for _, garage := range t.Garages {
			row = append(row, t.Services[dateGarage{date, garage}])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
