package validate

import (
	"fmt"

	"rating-manager/rating"
)

// Error is a single instance of a validation error.
type Error struct {
	// FileType is the extension of the file the error was found in.
	FileType string
	// Key identifies the offending record(s).
	Key string
	// Code names the validation that failed.
	Code string
	// Description has the failure details.
	Description string
}

func (e Error) String() string {
	return fmt.Sprintf("%s %s %s: %s", e.FileType, e.Code, e.Key, e.Description)
}

// A Validator checks one property of a rating.
type Validator func(*rating.Rating) ([]Error, error)

// All lists every validator run against a rating before import.
var All = []Validator{
	AllBlocksHaveTrips,
	AllBlocksHaveRuns,
	AllRevenueTripsArePublic,
	AllRoutesHavePatterns,
	AllRunsHaveBlocks,
	BlockGarages,
	CalendarExceptionsHaveUniqueRuns,
	ServicesHaveUniqueBlocks,
	NoExtraTimepoints,
	PatternStopHasNode,
	RoutesHaveTwoDirections,
	StopHasOnlyOneTimepoint,
	TimepointsInConsistentOrder,
	TripHasValidPattern,
	UniquePatternPrefix,
	UniqueTimepointPattern,
}

// Rating runs every validator over the rating, deduplicating errors.
func Rating(r *rating.Rating) ([]Error, error) {
	seen := map[Error]bool{}
	var errors []Error
	for _, validator := range All {
		found, err := validator(r)
		if err != nil {
			return nil, err
		}
		for _, e := range found {
			if seen[e] {
				continue
			}
			seen[e] = true
			errors = append(errors, e)
		}
	}
	return errors, nil
}
