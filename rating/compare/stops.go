// Package compare reports stop differences: between two ratings, and
// between a rating and the locations already loaded in TransitMaster.
package compare

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"rating-manager/rating"
	"rating-manager/rating/hastus"
)

type routeDirection struct {
	RouteID       string
	DirectionName string
}

// routeDirectionsByStop maps each stop ID to the route/directions whose
// patterns use it.
func routeDirectionsByStop(r *rating.Rating) (map[string]map[routeDirection]bool, error) {
	records, err := r.Records("pat")
	if err != nil {
		return nil, err
	}
	byStop := map[string]map[routeDirection]bool{}
	var last routeDirection
	for _, record := range records {
		if pattern, ok := record.(hastus.Pattern); ok {
			last = routeDirection{pattern.RouteID, pattern.DirectionName}
			continue
		}
		if stop, ok := record.(hastus.PatternStop); ok {
			if byStop[stop.StopID] == nil {
				byStop[stop.StopID] = map[routeDirection]bool{}
			}
			byStop[stop.StopID][last] = true
		}
	}
	return byStop, nil
}

// stopsByID indexes the rating's NDE stops by stop ID.
func stopsByID(r *rating.Rating) (map[string]hastus.Stop, error) {
	records, err := r.Records("nde")
	if err != nil {
		return nil, err
	}
	stops := map[string]hastus.Stop{}
	for _, record := range records {
		if stop, ok := record.(hastus.Stop); ok {
			stops[stop.StopID] = stop
		}
	}
	return stops, nil
}

// sortStopIDs orders stop IDs numerically where possible, with
// non-numeric IDs (landmark abbreviations) last in string order.
func sortStopIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		first, errFirst := strconv.Atoi(ids[i])
		second, errSecond := strconv.Atoi(ids[j])
		switch {
		case errFirst == nil && errSecond == nil:
			return first < second
		case errFirst == nil:
			return true
		case errSecond == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
}

func writeChanges(w io.Writer, stops map[string]hastus.Stop, stopIDs map[string]bool,
	byStop map[string]map[routeDirection]bool, changeType string) error {
	ids := make([]string, 0, len(stopIDs))
	for id := range stopIDs {
		ids = append(ids, id)
	}
	sortStopIDs(ids)

	for _, stopID := range ids {
		stop := stops[stopID]
		lat, lon := stop.LatLon()

		var keys []routeDirection
		for key := range byStop[stopID] {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].RouteID != keys[j].RouteID {
				return keys[i].RouteID < keys[j].RouteID
			}
			return keys[i].DirectionName < keys[j].DirectionName
		})
		directions := make([]string, 0, len(keys))
		for _, key := range keys {
			directions = append(directions, key.RouteID+" "+key.DirectionName)
		}

		_, err := fmt.Fprintf(w, "%s,%s,%s,%5f,%5f,%q\n",
			stopID, stop.Name, changeType, lat, lon, strings.Join(directions, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}

// Stops compares the stops of two ratings and writes one CSV row per new
// or changed stop: new stops, then shared stops grouped by whether the
// name and/or location changed.
func Stops(current, next *rating.Rating, w io.Writer) error {
	byStop, err := routeDirectionsByStop(next)
	if err != nil {
		return err
	}
	currentStops, err := stopsByID(current)
	if err != nil {
		return err
	}
	nextStops, err := stopsByID(next)
	if err != nil {
		return err
	}

	newStops := map[string]bool{}
	newNameNewLocation := map[string]bool{}
	sameNameNewLocation := map[string]bool{}
	newNameSameLocation := map[string]bool{}

	for stopID, nextStop := range nextStops {
		currentStop, shared := currentStops[stopID]
		if !shared {
			newStops[stopID] = true
			continue
		}
		sameName := currentStop.Name == nextStop.Name
		sameLocation := currentStop.EastingFt == nextStop.EastingFt &&
			currentStop.NorthingFt == nextStop.NorthingFt
		switch {
		case !sameName && !sameLocation:
			newNameNewLocation[stopID] = true
		case sameName && !sameLocation:
			sameNameNewLocation[stopID] = true
		case !sameName && sameLocation:
			newNameSameLocation[stopID] = true
		}
	}

	for _, group := range []struct {
		stopIDs    map[string]bool
		changeType string
	}{
		{newStops, "newStops"},
		{newNameNewLocation, "newName_newLocation"},
		{sameNameNewLocation, "sameName_newLocation"},
		{newNameSameLocation, "newName_sameLocation"},
	} {
		if err := writeChanges(w, nextStops, group.stopIDs, byStop, group.changeType); err != nil {
			return err
		}
	}
	return nil
}
