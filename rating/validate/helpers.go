package validate

import (
	"rating-manager/rating"
	"rating-manager/rating/hastus"
)

// routeDirection keys timepoint patterns by route and direction.
type routeDirection struct {
	RouteID       string
	DirectionName string
}

func (k routeDirection) String() string {
	return "(" + k.RouteID + ", " + k.DirectionName + ")"
}

// timepointsByRouteDirection maps (route ID, direction name) to the list of
// timepoints from the PPAT file.
func timepointsByRouteDirection(r *rating.Rating) (map[routeDirection][]string, error) {
	records, err := r.Records("ppat")
	if err != nil {
		return nil, err
	}
	timepoints := map[routeDirection][]string{}
	for _, record := range records {
		pattern, ok := record.(hastus.TimepointPattern)
		if !ok {
			continue
		}
		key := routeDirection{pattern.RouteID, pattern.DirectionName}
		timepoints[key] = pattern.Timepoints
	}
	return timepoints, nil
}

// sameListOrder reports whether second appears in the same relative order
// as first (i.e. second is a subsequence of first).
func sameListOrder(first, second []string) bool {
	i := 0
	for _, want := range second {
		for i < len(first) && first[i] != want {
			i++
		}
		if i == len(first) {
			return false
		}
		i++
	}
	return true
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
