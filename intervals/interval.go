// Package intervals reports on geo node intervals in TransitMaster:
// intervals with no measured or map distance, and intervals touching a
// given set of stops. The output is an HTML page the schedulers use to
// enter the missing distances.
package intervals

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IntervalType is the TransitMaster interval type.
type IntervalType int

const (
	Revenue IntervalType = iota
	Deadhead
	Pullout
	Pullin
)

func (t IntervalType) String() string {
	switch t {
	case Revenue:
		return "Revenue"
	case Deadhead:
		return "Deadhead"
	case Pullout:
		return "Pullout"
	case Pullin:
		return "Pullin"
	default:
		return fmt.Sprintf("IntervalType(%d)", int(t))
	}
}

// Stop is a location at one end of an interval. Located is false when
// TransitMaster has no coordinates for the stop.
type Stop struct {
	ID          string
	Description string
	Lat         float64
	Lon         float64
	Located     bool
}

// stopFromRow parses a stop from row fields, tolerating missing
// coordinates.
func stopFromRow(latField, lonField, id, description string) Stop {
	stop := Stop{ID: id, Description: description}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latField), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(lonField), 64)
	if errLat == nil && errLon == nil {
		stop.Lat = lat
		stop.Lon = lon
		stop.Located = true
	}
	return stop
}

// Interval is a link between two stops.
type Interval struct {
	ID                      *int
	Type                    *IntervalType
	FromStop                Stop
	ToStop                  Stop
	Route                   string
	Direction               string
	Pattern                 string
	DistanceBetweenMap      *int
	DistanceBetweenMeasured *int
}

// Located is true when both ends of the interval have coordinates.
func (i Interval) Located() bool {
	return i.FromStop.Located && i.ToStop.Located
}

// Description joins the route, direction and pattern.
func (i Interval) Description() string {
	if i.Route == "" && i.Direction == "" && i.Pattern == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", i.Route, i.Direction, i.Pattern)
}

// TypeName is the interval type, or blank when unknown.
func (i Interval) TypeName() string {
	if i.Type == nil {
		return ""
	}
	return i.Type.String()
}

// FromRow builds an Interval from a CSV or database row.
func FromRow(row map[string]string) (Interval, error) {
	interval := Interval{
		FromStop: stopFromRow(
			row["FromStopLatitude"], row["FromStopLongitude"],
			row["FromStopNumber"], row["FromStopDescription"]),
		ToStop: stopFromRow(
			row["ToStopLatitude"], row["ToStopLongitude"],
			row["ToStopNumber"], row["ToStopDescription"]),
	}

	if description, ok := row["IntervalDescription"]; ok {
		parts := strings.SplitN(description, "-", 3)
		if len(parts) != 3 {
			return interval, fmt.Errorf("malformed interval description %q", description)
		}
		interval.Route = parts[0]
		interval.Direction = parts[1]
		interval.Pattern = parts[2]
	} else {
		interval.Route = row["Route"]
		interval.Direction = row["Direction"]
		interval.Pattern = row["Pattern"]
	}

	id, err := optionalInt(row["IntervalId"])
	if err != nil {
		return interval, fmt.Errorf("bad IntervalId: %w", err)
	}
	interval.ID = id

	// exports sometimes carry "--" or "DH" here; leave the type unset
	if rawType := strings.TrimSpace(row["IntervalType"]); rawType != "" {
		if value, err := strconv.Atoi(rawType); err == nil {
			intervalType := IntervalType(value)
			interval.Type = &intervalType
		}
	}

	if interval.DistanceBetweenMap, err = optionalInt(row["DistanceBetweenMap"]); err != nil {
		return interval, fmt.Errorf("bad DistanceBetweenMap: %w", err)
	}
	if interval.DistanceBetweenMeasured, err = optionalInt(row["DistanceBetweenMeasured"]); err != nil {
		return interval, fmt.Errorf("bad DistanceBetweenMeasured: %w", err)
	}
	return interval, nil
}

// FromRows builds and sorts Intervals from rows, ordered by pattern,
// direction, then interval ID.
func FromRows(rows []map[string]string) ([]Interval, error) {
	intervals := make([]Interval, 0, len(rows))
	for _, row := range rows {
		interval, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	Sort(intervals)
	return intervals, nil
}

// Sort orders intervals by pattern, direction, then interval ID.
func Sort(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		if intervals[i].Pattern != intervals[j].Pattern {
			return intervals[i].Pattern < intervals[j].Pattern
		}
		if intervals[i].Direction != intervals[j].Direction {
			return intervals[i].Direction < intervals[j].Direction
		}
		return idOrZero(intervals[i].ID) < idOrZero(intervals[j].ID)
	})
}

func idOrZero(id *int) int {
	if id == nil {
		return 0
	}
	return *id
}

// optionalInt parses a field to an int, decimals truncated, or nil when
// the field is blank.
func optionalInt(field string) (*int, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, err
	}
	intValue := int(value)
	return &intValue, nil
}
