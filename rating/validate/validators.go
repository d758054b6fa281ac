package validate

import (
	"fmt"
	"sort"
	"strings"

	"rating-manager/rating"
	"rating-manager/rating/hastus"
)

// UniquePatternPrefix checks that, for most patterns in the PAT file, the
// pattern prefix (first 5 characters) and direction are unique.
func UniquePatternPrefix(r *rating.Rating) ([]Error, error) {
	expectedNonUnique := map[routeDirection]bool{
		{"00wad", "Inbound"}:  true,
		{"00rad", "Inbound"}:  true,
		{"00wad", "Outbound"}: true,
		{"00rad", "Outbound"}: true,
		{"0746_", "Inbound"}:  true,
		{"0746_", "Outbound"}: true,
	}

	records, err := r.Records("pat")
	if err != nil {
		return nil, err
	}

	patternsByPrefix := map[routeDirection]map[string]bool{}
	for _, record := range records {
		pattern, ok := record.(hastus.Pattern)
		if !ok {
			continue
		}
		if pattern.DirectionName == "" {
			// ignore blanks
			continue
		}
		prefix := pattern.PatternID
		if len(prefix) > 5 {
			prefix = prefix[:5]
		}
		key := routeDirection{prefix, pattern.DirectionName}
		if expectedNonUnique[key] {
			continue
		}
		if patternsByPrefix[key] == nil {
			patternsByPrefix[key] = map[string]bool{}
		}
		patternsByPrefix[key][pattern.PatternID] = true
	}

	var errors []Error
	for _, key := range sortedRouteDirections(patternsByPrefix) {
		patternIDs := patternsByPrefix[key]
		if len(patternIDs) == 1 {
			continue
		}
		errors = append(errors, Error{
			FileType:    "pat",
			Key:         key.String(),
			Code:        "non_unique_pattern",
			Description: fmt.Sprintf("multiple patterns with prefix: %v", sortedKeys(patternIDs)),
		})
	}
	return errors, nil
}

// UniqueTimepointPattern checks that, for a given timepoint pattern ID, the
// list of timepoints is always the same.
func UniqueTimepointPattern(r *rating.Rating) ([]Error, error) {
	records, err := r.Records("ppat")
	if err != nil {
		return nil, err
	}

	var order []string
	patternsByID := map[string][]hastus.TimepointPattern{}
	for _, record := range records {
		pattern, ok := record.(hastus.TimepointPattern)
		if !ok {
			continue
		}
		id := pattern.TimepointPatternID
		if _, seen := patternsByID[id]; !seen {
			order = append(order, id)
		}
		patternsByID[id] = append(patternsByID[id], pattern)
	}

	var errors []Error
	for _, id := range order {
		patterns := patternsByID[id]
		if len(patterns) == 1 {
			continue
		}
		first := patterns[0]
		for _, pattern := range patterns[1:] {
			if !equalStrings(first.Timepoints, pattern.Timepoints) {
				errors = append(errors, Error{
					FileType:    "ppat",
					Key:         id,
					Code:        "non_unique_timepoint_pattern",
					Description: fmt.Sprintf("%v != %v", first.Timepoints, pattern.Timepoints),
				})
			}
		}
	}
	return errors, nil
}

// NoExtraTimepoints checks that all timepoints in PAT are also in PPAT for
// a given route/direction.
//
// Exceptions:
//   - PAT records with an empty direction name
//   - RAD/WAD routes
func NoExtraTimepoints(r *rating.Rating) ([]Error, error) {
	timepoints, err := timepointsByRouteDirection(r)
	if err != nil {
		return nil, err
	}
	records, err := r.Records("pat")
	if err != nil {
		return nil, err
	}

	var errors []Error
	var key *routeDirection
	for _, record := range records {
		if pattern, ok := record.(hastus.Pattern); ok {
			// keep track of the last Pattern we saw
			if pattern.RouteID == "rad" || pattern.RouteID == "wad" {
				key = nil
				continue
			}
			key = &routeDirection{pattern.RouteID, pattern.DirectionName}
			if _, found := timepoints[*key]; !found && pattern.DirectionName != "" {
				errors = append(errors, Error{
					FileType:    "pat",
					Key:         key.String(),
					Code:        "timepoint_pattern_missing",
					Description: "No matching timepoint pattern found",
				})
			}
			continue
		}

		stop, ok := record.(hastus.PatternStop)
		if !ok {
			continue
		}
		if key == nil {
			continue
		}
		expected, found := timepoints[*key]
		if !found {
			// missing route/directions already produced an error above
			continue
		}
		if stop.TimepointID == "" {
			continue
		}
		if !contains(expected, stop.TimepointID) {
			errors = append(errors, Error{
				FileType:    "pat",
				Key:         key.String(),
				Code:        "timepoint_missing_from_timepoint_pattern",
				Description: fmt.Sprintf("%q missing from timepoint patterns", stop.TimepointID),
			})
		}
	}
	return errors, nil
}

// TimepointsInConsistentOrder checks that timepoints in PAT are in the same
// order as in PPAT for a given route/direction.
func TimepointsInConsistentOrder(r *rating.Rating) ([]Error, error) {
	expected, err := timepointsByRouteDirection(r)
	if err != nil {
		return nil, err
	}
	records, err := r.Records("pat")
	if err != nil {
		return nil, err
	}

	var errors []Error
	var pattern *hastus.Pattern
	var timepoints []string

	flush := func() {
		key := routeDirection{pattern.RouteID, pattern.DirectionName}
		expectedTimepoints := expected[key]
		if len(expectedTimepoints) == 0 {
			return
		}
		var filtered []string
		for _, timepoint := range timepoints {
			if contains(expectedTimepoints, timepoint) {
				filtered = append(filtered, timepoint)
			}
		}
		if !sameListOrder(expectedTimepoints, filtered) {
			errors = append(errors, Error{
				FileType: "pat",
				Key:      pattern.PatternID,
				Code:     "timepoints_out_of_order",
				Description: fmt.Sprintf("expected timepoint order: %v actual timepoint order: %v",
					expectedTimepoints, filtered),
			})
		}
	}

	for _, record := range records {
		if next, ok := record.(hastus.Pattern); ok {
			if pattern != nil {
				flush()
			}
			pattern = &next
			timepoints = nil
			continue
		}
		if stop, ok := record.(hastus.PatternStop); ok && stop.TimepointID != "" {
			timepoints = append(timepoints, stop.TimepointID)
		}
	}
	if pattern != nil {
		flush()
	}
	return errors, nil
}

// validGarages lists the garages a block may pull out from or pull in to.
var validGarages = map[string]bool{
	"albny": true,
	"arbor": true,
	"cabot": true,
	"censq": true,
	"charl": true,
	"fell":  true,
	"lynn":  true,
	"marbl": true,
	"ncamb": true,
	"ngate": true,
	"prwb":  true,
	"soham": true,
	"qubus": true,
	"somvl": true,
	"wondw": true,
}

// allowedGaragePairs lists the pull-out/pull-in combinations that are
// allowed to differ.
var allowedGaragePairs = map[[2]string]bool{
	{"censq", "lynn"}:  true,
	{"lynn", "censq"}:  true,
	{"lynn", "ngate"}:  true,
	{"lynn", "wondw"}:  true,
	{"marbl", "lynn"}:  true,
	{"ngate", "lynn"}:  true,
	{"wondw", "lynn"}:  true,
}

// BlockGarages checks that each block leaves from and arrives at the same,
// valid, garage.
//
// Exceptions:
//   - the garage pairs in allowedGaragePairs
//   - dead reckoning schedules (ST1, DR1)
func BlockGarages(r *rating.Rating) ([]Error, error) {
	records, err := r.Records("blk")
	if err != nil {
		return nil, err
	}

	var errors []Error
	for _, record := range records {
		block, ok := record.(hastus.Block)
		if !ok {
			continue
		}
		if block.ServiceKey == "ST1" || block.ServiceKey == "DR1" {
			continue
		}
		if len(block.Times) == 0 {
			continue
		}

		first := block.Times[0].Place
		last := block.Times[len(block.Times)-1].Place
		key := "(" + block.BlockID + ", " + block.ServiceKey + ")"

		for _, garage := range []string{first, last} {
			if !validGarages[garage] {
				errors = append(errors, Error{
					FileType:    "blk",
					Key:         key,
					Code:        "block_with_invalid_garage",
					Description: fmt.Sprintf("%s is not a valid garage", garage),
				})
			}
		}

		if first != last && !allowedGaragePairs[[2]string{first, last}] {
			errors = append(errors, Error{
				FileType:    "blk",
				Key:         key,
				Code:        "block_with_different_garage",
				Description: fmt.Sprintf("leaves from %s, arrives at %s", first, last),
			})
		}
	}
	return errors, nil
}

// AllBlocksHaveTrips checks that all blocks have at least one revenue trip.
//
// Exceptions: RAD/WAD blocks.
func AllBlocksHaveTrips(r *rating.Rating) ([]Error, error) {
	trips, err := r.Records("trp")
	if err != nil {
		return nil, err
	}
	revenueTrips := map[string]bool{}
	for _, record := range trips {
		trip, ok := record.(hastus.Trip)
		if !ok {
			continue
		}
		if trip.RevenueType.IsRevenue() {
			revenueTrips[trip.TripID] = true
		}
	}

	records, err := r.Records("blk")
	if err != nil {
		return nil, err
	}

	var errors []Error
	var previous *hastus.Block
	hasRevenueTrips := false

	blockError := func(block *hastus.Block) Error {
		return Error{
			FileType:    "blk",
			Key:         "(" + block.BlockID + ", " + block.ServiceKey + ")",
			Code:        "block_with_no_trips",
			Description: "Block has no/only non-revenue trips",
		}
	}

	for _, record := range records {
		if block, ok := record.(hastus.Block); ok {
			if strings.Contains(block.BlockID, "rad") || strings.Contains(block.BlockID, "wad") {
				// RAD/WAD trips don't need to get validated
				previous = nil
				hasRevenueTrips = false
				continue
			}
			if previous != nil && !hasRevenueTrips {
				errors = append(errors, blockError(previous))
			}
			previous = &block
			hasRevenueTrips = false
			continue
		}
		if previous == nil {
			continue
		}
		if identifier, ok := record.(hastus.TripIdentifier); ok {
			if revenueTrips[identifier.TripID] {
				hasRevenueTrips = true
			}
		}
	}
	if previous != nil && !hasRevenueTrips {
		errors = append(errors, blockError(previous))
	}
	return errors, nil
}

// TripHasValidPattern checks that each trip's pattern is also present in
// the PAT file.
//
// Exceptions: non-revenue trips, as-directed trips.
func TripHasValidPattern(r *rating.Rating) ([]Error, error) {
	patterns, err := r.Records("pat")
	if err != nil {
		return nil, err
	}
	validPatterns := map[string]bool{}
	for _, record := range patterns {
		if pattern, ok := record.(hastus.Pattern); ok {
			validPatterns[strings.TrimSpace(pattern.PatternID)] = true
		}
	}

	trips, err := r.Records("trp")
	if err != nil {
		return nil, err
	}

	var errors []Error
	for _, record := range trips {
		trip, ok := record.(hastus.Trip)
		if !ok {
			continue
		}
		if validPatterns[trip.PatternID] || trip.AsDirected() || !trip.RevenueType.IsRevenue() {
			continue
		}
		errors = append(errors, Error{
			FileType:    "trp",
			Key:         trip.TripID,
			Code:        "trip_with_invalid_pattern",
			Description: fmt.Sprintf("pattern %s does not exist", trip.PatternID),
		})
	}
	return errors, nil
}

// AllRevenueTripsArePublic checks that each revenue trip is tagged as
// public.
//
// Exceptions: non-revenue trips, as-directed trips.
func AllRevenueTripsArePublic(r *rating.Rating) ([]Error, error) {
	trips, err := r.Records("trp")
	if err != nil {
		return nil, err
	}

	var errors []Error
	for _, record := range trips {
		trip, ok := record.(hastus.Trip)
		if !ok {
			continue
		}
		if !trip.NonPublic || trip.AsDirected() || !trip.RevenueType.IsRevenue() {
			continue
		}
		errors = append(errors, Error{
			FileType:    "trp",
			Key:         trip.TripID,
			Code:        "trip_revenue_and_non_public",
			Description: fmt.Sprintf("trip %s is revenue but non-public", trip.TripID),
		})
	}
	return errors, nil
}

// StopHasOnlyOneTimepoint checks that stops only have one timepoint value
// across the NDE and PAT files.
func StopHasOnlyOneTimepoint(r *rating.Rating) ([]Error, error) {
	stops, err := r.Records("nde")
	if err != nil {
		return nil, err
	}

	stopTimepoints := map[string]map[string]bool{}
	add := func(stopID, timepointID string) {
		if stopTimepoints[stopID] == nil {
			stopTimepoints[stopID] = map[string]bool{}
		}
		stopTimepoints[stopID][timepointID] = true
	}

	for _, record := range stops {
		stop, ok := record.(hastus.Stop)
		if !ok || stop.TimepointID == "" {
			continue
		}
		// add the default timepoint if the stop exists in the NDE file
		add(stop.StopID, stop.TimepointID)
	}

	patterns, err := r.Records("pat")
	if err != nil {
		return nil, err
	}
	for _, record := range patterns {
		stop, ok := record.(hastus.PatternStop)
		if !ok || stop.TimepointID == "" {
			continue
		}
		add(stop.StopID, stop.TimepointID)
	}

	var errors []Error
	for _, stopID := range sortedKeys2(stopTimepoints) {
		timepoints := stopTimepoints[stopID]
		if len(timepoints) == 1 {
			continue
		}
		errors = append(errors, Error{
			FileType:    "pat",
			Key:         stopID,
			Code:        "stop_with_multiple_timepoints",
			Description: fmt.Sprintf("%v", sortedKeys(timepoints)),
		})
	}
	return errors, nil
}

// AllRoutesHavePatterns checks that all routes in the RTE file have at
// least one pattern.
func AllRoutesHavePatterns(r *rating.Rating) ([]Error, error) {
	routes, err := r.Records("rte")
	if err != nil {
		return nil, err
	}
	routeIDs := map[string]bool{}
	for _, record := range routes {
		if route, ok := record.(hastus.Route); ok {
			routeIDs[route.RouteID] = true
		}
	}

	patterns, err := r.Records("pat")
	if err != nil {
		return nil, err
	}
	for _, record := range patterns {
		if pattern, ok := record.(hastus.Pattern); ok {
			delete(routeIDs, pattern.RouteID)
		}
	}

	var errors []Error
	for _, routeID := range sortedKeys(routeIDs) {
		errors = append(errors, Error{
			FileType:    "rte",
			Key:         routeID,
			Code:        "route_without_patterns",
			Description: "route has no patterns in PAT file",
		})
	}
	return errors, nil
}

// PatternStopHasNode checks that all PatternStop records exist in the NDE
// file.
func PatternStopHasNode(r *rating.Rating) ([]Error, error) {
	stops, err := r.Records("nde")
	if err != nil {
		return nil, err
	}
	validStops := map[string]bool{}
	for _, record := range stops {
		if stop, ok := record.(hastus.Stop); ok {
			validStops[stop.StopID] = true
		}
	}

	patterns, err := r.Records("pat")
	if err != nil {
		return nil, err
	}

	var errors []Error
	patternID := ""
	for _, record := range patterns {
		if pattern, ok := record.(hastus.Pattern); ok {
			patternID = pattern.PatternID
			continue
		}
		stop, ok := record.(hastus.PatternStop)
		if !ok {
			continue
		}
		if validStops[stop.StopID] {
			continue
		}
		errors = append(errors, Error{
			FileType:    "pat",
			Key:         "(" + patternID + ", " + stop.StopID + ")",
			Code:        "pattern_stop_without_node",
			Description: fmt.Sprintf("stop %s not in NDE file", stop.StopID),
		})
	}
	return errors, nil
}

// RoutesHaveTwoDirections checks that each route in the PPAT file has two
// directions.
//
// Exceptions: the one-direction routes in directionCountOverrides.
func RoutesHaveTwoDirections(r *rating.Rating) ([]Error, error) {
	directionCountOverrides := map[string]int{
		"171": 1,
		"195": 1,
		"214": 1,
		"600": 1, // Onboard Tablet Pilot Test Route
		"601": 1, // Onboard Tablet Pilot Test Route
		"rad": 1,
		"wad": 1,
	}

	records, err := r.Records("ppat")
	if err != nil {
		return nil, err
	}

	directions := map[string]map[string]bool{}
	for _, record := range records {
		pattern, ok := record.(hastus.TimepointPattern)
		if !ok {
			continue
		}
		if directions[pattern.RouteID] == nil {
			directions[pattern.RouteID] = map[string]bool{}
		}
		directions[pattern.RouteID][pattern.DirectionName] = true
	}

	var errors []Error
	for _, routeID := range sortedKeys2(directions) {
		expected := 2
		if override, ok := directionCountOverrides[routeID]; ok {
			expected = override
		}
		if len(directions[routeID]) == expected {
			continue
		}
		errors = append(errors, Error{
			FileType:    "ppat",
			Key:         routeID,
			Code:        "route_with_unexpected_direction_count",
			Description: fmt.Sprintf("has directions %v", sortedKeys(directions[routeID])),
		})
	}
	return errors, nil
}

// pieceKey cross-references blocks and crew pieces.
type pieceKey struct {
	PieceID    string
	ServiceKey string
}

// AllBlocksHaveRuns checks that each block in the BLK file has at least one
// Piece in the CRW file.
func AllBlocksHaveRuns(r *rating.Rating) ([]Error, error) {
	pieces, err := r.Records("crw")
	if err != nil {
		return nil, err
	}
	pieceKeys := map[pieceKey]bool{}
	for _, record := range pieces {
		if piece, ok := record.(hastus.Piece); ok {
			pieceKeys[pieceKey{piece.PieceID, piece.ServiceKey}] = true
		}
	}

	blocks, err := r.Records("blk")
	if err != nil {
		return nil, err
	}

	var errors []Error
	for _, record := range blocks {
		block, ok := record.(hastus.Block)
		if !ok {
			continue
		}
		if pieceKeys[pieceKey{block.PieceID, block.ServiceKey}] {
			continue
		}
		errors = append(errors, Error{
			FileType:    "blk",
			Key:         "(" + block.BlockID + ", " + block.ServiceKey + ")",
			Code:        "block_without_runs",
			Description: "No pieces found.",
		})
	}
	return errors, nil
}

// AllRunsHaveBlocks checks that each Piece in the CRW file has at least one
// block in the BLK file.
func AllRunsHaveBlocks(r *rating.Rating) ([]Error, error) {
	blocks, err := r.Records("blk")
	if err != nil {
		return nil, err
	}
	blockKeys := map[pieceKey]bool{}
	for _, record := range blocks {
		if block, ok := record.(hastus.Block); ok {
			blockKeys[pieceKey{block.PieceID, block.ServiceKey}] = true
		}
	}

	pieces, err := r.Records("crw")
	if err != nil {
		return nil, err
	}

	var errors []Error
	for _, record := range pieces {
		piece, ok := record.(hastus.Piece)
		if !ok {
			continue
		}
		if blockKeys[pieceKey{piece.PieceID, piece.ServiceKey}] {
			continue
		}
		errors = append(errors, Error{
			FileType:    "crw",
			Key:         "(" + piece.RunID + ", " + piece.ServiceKey + ")",
			Code:        "run_without_blocks",
			Description: "No blocks found.",
		})
	}
	return errors, nil
}

// CalendarExceptionsHaveUniqueRuns checks that each used exception combo
// has unique run IDs.
//
// Inside TransitMaster, only the last 3 digits of the service ID identify
// which blocks/runs are active. The schedulers need those groups to use a
// unique set of runs; otherwise overlapping runs get activated on a
// particular date.
func CalendarExceptionsHaveUniqueRuns(r *rating.Rating) ([]Error, error) {
	calendar, err := r.Records("cal")
	if err != nil {
		return nil, err
	}

	dateExceptions := map[string]map[string]bool{}
	for _, record := range calendar {
		calDate, ok := record.(hastus.CalendarDate)
		if !ok {
			continue
		}
		if calDate.ServiceKey == "" {
			// Service not active on the date
			continue
		}
		day := calDate.Date.Format("2006-01-02")
		if dateExceptions[day] == nil {
			dateExceptions[day] = map[string]bool{}
		}
		dateExceptions[day][calDate.ServiceKey] = true
	}

	// unique combos, keyed by their sorted service keys
	combos := map[string][]string{}
	for _, services := range dateExceptions {
		keys := sortedKeys(services)
		combos[strings.Join(keys, ",")] = keys
	}

	pieces, err := r.Records("crw")
	if err != nil {
		return nil, err
	}
	runsByServiceKey := map[string]map[string]bool{}
	for _, record := range pieces {
		piece, ok := record.(hastus.Piece)
		if !ok {
			continue
		}
		if runsByServiceKey[piece.ServiceKey] == nil {
			runsByServiceKey[piece.ServiceKey] = map[string]bool{}
		}
		runsByServiceKey[piece.ServiceKey][piece.RunID] = true
	}

	var errors []Error
	for _, comboKey := range sortedKeys2(combos) {
		combo := combos[comboKey]
		if len(combo) == 1 {
			continue
		}
		for i := 0; i < len(combo); i++ {
			for j := i + 1; j < len(combo); j++ {
				first, second := combo[i], combo[j]
				var overlaps []string
				for runID := range runsByServiceKey[first] {
					if runsByServiceKey[second][runID] {
						overlaps = append(overlaps, runID)
					}
				}
				sort.Strings(overlaps)
				for _, runID := range overlaps {
					errors = append(errors, Error{
						FileType:    "crw",
						Key:         runID,
						Code:        "calendar_exception_with_duplicate_runs",
						Description: fmt.Sprintf("used by services: %s, %s", first, second),
					})
				}
			}
		}
	}
	return errors, nil
}

// ServicesHaveUniqueBlocks checks that each used service ID has unique
// block IDs.
func ServicesHaveUniqueBlocks(r *rating.Rating) ([]Error, error) {
	records, err := r.Records("blk")
	if err != nil {
		return nil, err
	}

	type blockKey struct {
		BlockID    string
		ServiceKey string
	}
	seen := map[blockKey]bool{}

	var errors []Error
	for _, record := range records {
		block, ok := record.(hastus.Block)
		if !ok {
			continue
		}
		key := blockKey{block.BlockID, block.ServiceKey}
		if seen[key] {
			errors = append(errors, Error{
				FileType: "blk",
				Key:      "(" + block.BlockID + ", " + block.ServiceKey + ")",
				Code:     "duplicate_block_on_service",
			})
		} else {
			seen[key] = true
		}
	}
	return errors, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedRouteDirections[V any](m map[routeDirection]V) []routeDirection {
	keys := make([]routeDirection, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RouteID != keys[j].RouteID {
			return keys[i].RouteID < keys[j].RouteID
		}
		return keys[i].DirectionName < keys[j].DirectionName
	})
	return keys
}

func equalStrings(first, second []string) bool {
	if len(first) != len(second) {
		return false
	}
	for i := range first {
		if first[i] != second[i] {
			return false
		}
	}
	return true
}
