package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rating-manager/rating"
)

// newTestRating writes the given export files into a temp directory and
// returns a Rating over it.
func newTestRating(t *testing.T, files map[string][]string) *rating.Rating {
	t.Helper()
	dir := t.TempDir()
	for name, lines := range files {
		path := filepath.Join(dir, name)
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return rating.New(dir)
}

func TestUniquePatternPrefix(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
			"PAT;01;01-_-O-2;Outbound;;1;;_;Harvard",
			"PAT;01;01-_-I-1;Inbound;;1;;_;Nubian",
			"PAT;rad;00rad-I;Inbound;;;;_;rad",
			"PAT;rad;00rad-X;Inbound;;;;_;rad",
		},
	})

	errors, err := UniquePatternPrefix(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "non_unique_pattern", errors[0].Code)
	assert.Equal(t, "(01-_-, Outbound)", errors[0].Key)
	assert.Contains(t, errors[0].Description, "01-_-O-1")
	assert.Contains(t, errors[0].Description, "01-_-O-2")
}

func TestUniqueTimepointPattern(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.ppat": {
			"PPAT;01;Outbound;;01-O;dudly;melwa;hhgat;01",
			"PPAT;01;Outbound;;01-O;dudly;hhgat;01",
			"PPAT;01;Inbound;;01-I;hhgat;melwa;dudly;01",
		},
	})

	errors, err := UniqueTimepointPattern(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "non_unique_timepoint_pattern", errors[0].Code)
	assert.Equal(t, "01-O", errors[0].Key)
}

func TestNoExtraTimepoints(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.ppat": {
			"PPAT;01;Outbound;;01-O;dudly;melwa;hhgat;01",
		},
		"test.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
			"TPS;110;dudly;;1",
			"TPS;112;;;1",
			"TPS;114;extra;;1",
			"PAT;02;02-_-O-1;Outbound;;1;;_;Sullivan",
			"TPS;120;dudly;;1",
		},
	})

	errors, err := NoExtraTimepoints(r)
	require.NoError(t, err)
	require.Len(t, errors, 2)
	assert.Equal(t, "timepoint_missing_from_timepoint_pattern", errors[0].Code)
	assert.Equal(t, "(01, Outbound)", errors[0].Key)
	assert.Equal(t, "timepoint_pattern_missing", errors[1].Code)
	assert.Equal(t, "(02, Outbound)", errors[1].Key)
}

func TestNoExtraTimepointsSkipsAsDirected(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.ppat": {},
		"test.pat": {
			"PAT;rad;00rad-I;Inbound;;;;_;rad",
			"TPS;110;dudly;;1",
		},
	})

	errors, err := NoExtraTimepoints(r)
	require.NoError(t, err)
	assert.Empty(t, errors)
}

func TestTimepointsInConsistentOrder(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.ppat": {
			"PPAT;01;Outbound;;01-O;dudly;melwa;hhgat;01",
		},
		"test.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
			"TPS;110;dudly;;1",
			"TPS;111;hhgat;;1",
			"TPS;112;melwa;;1",
			"PAT;01;01-_-O-2;Outbound;;1;;_;Harvard",
			"TPS;110;dudly;;1",
			"TPS;112;melwa;;1",
		},
	})

	errors, err := TimepointsInConsistentOrder(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "timepoints_out_of_order", errors[0].Code)
	assert.Equal(t, "01-_-O-1", errors[0].Key)
}

func TestBlockGarages(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.blk": {
			"BLK;A57-90;57-11;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
			"BLK;A57-91;57-12;;albny;0440a;wtryd;0450a;wtryd;0851a;wtryd;0909a;;;;011",
			"BLK;L436-1;436-1;;lynn;0440a;clifs;0450a;clifs;0851a;wondw;0909a;;;;011",
			"BLK;D1;d-1;;xxxxx;0440a;wtryd;0450a;wtryd;0851a;xxxxx;0909a;;;;DR1",
		},
	})

	errors, err := BlockGarages(r)
	require.NoError(t, err)
	require.Len(t, errors, 2)
	assert.Equal(t, "block_with_invalid_garage", errors[0].Code)
	assert.Equal(t, "(A57-91, 011)", errors[0].Key)
	assert.Equal(t, "wtryd is not a valid garage", errors[0].Description)
	assert.Equal(t, "block_with_different_garage", errors[1].Code)
	assert.Equal(t, "(A57-91, 011)", errors[1].Key)
}

func TestAllBlocksHaveTrips(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.trp": {
			"TRP;12345;;;57;57-_-O-1;desc;1;0;1",
			"TRP;12346;;;57;57-_-O-1;desc;2;0;0",
		},
		"test.blk": {
			"BLK;A57-90;57-11;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
			"TIN;12345",
			"BLK;A57-91;57-12;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
			"TIN;12346",
			"BLK;A57-rad;57-13;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
		},
	})

	errors, err := AllBlocksHaveTrips(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "block_with_no_trips", errors[0].Code)
	assert.Equal(t, "(A57-91, 011)", errors[0].Key)
}

func TestTripHasValidPattern(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.pat": {
			"PAT;57;57-_-O-1;Outbound;;1;;_;Watertown",
		},
		"test.trp": {
			"TRP;12345;;;57;57-_-O-1;desc;1;0;1",
			"TRP;12346;;;57;57-_-O-9;desc;2;0;1",
			"TRP;12347;;;57;57-_-O-9;desc;3;0;0",
			"TRP;12348;;;rad;00rad-X;desc;4;0;1",
		},
	})

	errors, err := TripHasValidPattern(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "trip_with_invalid_pattern", errors[0].Code)
	assert.Equal(t, "12346", errors[0].Key)
	assert.Equal(t, "pattern 57-_-O-9 does not exist", errors[0].Description)
}

func TestAllRevenueTripsArePublic(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.trp": {
			"TRP;12345;;;57;57-_-O-1;desc;1;0;1",
			"TRP;12346;;;57;57-_-O-1;desc;2;1;1",
			"TRP;12347;;;57;57-_-O-1;desc;3;1;0",
			"TRP;12348;;;rad;00rad-X;desc;4;1;1",
		},
	})

	errors, err := AllRevenueTripsArePublic(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "trip_revenue_and_non_public", errors[0].Code)
	assert.Equal(t, "12346", errors[0].Key)
}

func TestStopHasOnlyOneTimepoint(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.nde": {
			"STP;110;Mass Ave;maput;768989.0;2945910.0;Mass Ave;Putnam Ave;;;Cambridge;;1",
		},
		"test.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
			"TPS;110;other;;1",
			"TPS;111;dudly;;1",
		},
	})

	errors, err := StopHasOnlyOneTimepoint(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "stop_with_multiple_timepoints", errors[0].Code)
	assert.Equal(t, "110", errors[0].Key)
}

func TestAllRoutesHavePatterns(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.rte": {
			"RTE;01;;Key;;bus",
			"RTE;99;;Local;;bus",
		},
		"test.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
		},
	})

	errors, err := AllRoutesHavePatterns(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "route_without_patterns", errors[0].Code)
	assert.Equal(t, "99", errors[0].Key)
}

func TestPatternStopHasNode(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.nde": {
			"STP;110;Mass Ave;maput;768989.0;2945910.0;Mass Ave;Putnam Ave;;;Cambridge;;1",
		},
		"test.pat": {
			"PAT;01;01-_-O-1;Outbound;;1;;_;Harvard",
			"TPS;110;;;1",
			"TPS;999;;;1",
		},
	})

	errors, err := PatternStopHasNode(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "pattern_stop_without_node", errors[0].Code)
	assert.Equal(t, "(01-_-O-1, 999)", errors[0].Key)
}

func TestRoutesHaveTwoDirections(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.ppat": {
			"PPAT;01;Outbound;;01-O;dudly;melwa;hhgat;01",
			"PPAT;01;Inbound;;01-I;hhgat;melwa;dudly;01",
			"PPAT;39;Outbound;;39-O;backb;forhl;39",
			"PPAT;171;Outbound;;171-O;dudly;logan;171",
		},
	})

	errors, err := RoutesHaveTwoDirections(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "route_with_unexpected_direction_count", errors[0].Code)
	assert.Equal(t, "39", errors[0].Key)
}

func TestAllBlocksHaveRunsAndAllRunsHaveBlocks(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.blk": {
			"BLK;A57-90;57-11;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
			"BLK;A57-91;57-99;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
		},
		"test.crw": {
			"PCE;125-1400;;;57-11;;albny;0430a;albny;0440a;albny;0909a;albny;0919a;011",
			"PCE;125-1401;;;57-88;;albny;0430a;albny;0440a;albny;0909a;albny;0919a;011",
		},
	})

	blockErrors, err := AllBlocksHaveRuns(r)
	require.NoError(t, err)
	require.Len(t, blockErrors, 1)
	assert.Equal(t, "block_without_runs", blockErrors[0].Code)
	assert.Equal(t, "(A57-91, 011)", blockErrors[0].Key)

	runErrors, err := AllRunsHaveBlocks(r)
	require.NoError(t, err)
	require.Len(t, runErrors, 1)
	assert.Equal(t, "run_without_blocks", runErrors[0].Code)
	assert.Equal(t, "(125-1401, 011)", runErrors[0].Key)
}

func TestCalendarExceptionsHaveUniqueRuns(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.cal": {
			"DAT;20122020;albny;011;Sunday",
			"DAT;20122020;albny;ns1;Sunday",
			"DAT;27122020;albny;011;Sunday",
		},
		"test.crw": {
			"PCE;125-1400;;;57-11;;albny;0430a;albny;0440a;albny;0909a;albny;0919a;011",
			"PCE;125-1400;;;57-12;;albny;0430a;albny;0440a;albny;0909a;albny;0919a;ns1",
			"PCE;125-1401;;;57-13;;albny;0430a;albny;0440a;albny;0909a;albny;0919a;ns1",
		},
	})

	errors, err := CalendarExceptionsHaveUniqueRuns(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "calendar_exception_with_duplicate_runs", errors[0].Code)
	assert.Equal(t, "125-1400", errors[0].Key)
	assert.Equal(t, "used by services: 011, ns1", errors[0].Description)
}

func TestServicesHaveUniqueBlocks(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"test.blk": {
			"BLK;A57-90;57-11;;albny;0440a;wtryd;0450a;wtryd;0851a;albny;0909a;;;;011",
			"BLK;A57-90;57-12;;albny;0500a;wtryd;0510a;wtryd;0900a;albny;0920a;;;;011",
			"BLK;A57-90;57-13;;albny;0500a;wtryd;0510a;wtryd;0900a;albny;0920a;;;;ns1",
		},
	})

	errors, err := ServicesHaveUniqueBlocks(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "duplicate_block_on_service", errors[0].Code)
	assert.Equal(t, "(A57-90, 011)", errors[0].Key)
}

func TestRatingDeduplicates(t *testing.T) {
	r := newTestRating(t, map[string][]string{
		"a.trp": {
			"TRP;12346;;;57;57-_-O-1;desc;2;1;1",
		},
		"b.trp": {
			"TRP;12346;;;57;57-_-O-1;desc;2;1;1",
		},
		"test.pat":  {"PAT;57;57-_-O-1;Outbound;;1;;_;Watertown"},
		"test.ppat": {"PPAT;57;Outbound;;57-O;kenbs;wtryd;57", "PPAT;57;Inbound;;57-I;wtryd;kenbs;57"},
		"test.nde":  {},
		"test.rte":  {},
		"test.blk":  {},
		"test.crw":  {},
		"test.cal":  {},
	})

	errors, err := Rating(r)
	require.NoError(t, err)
	require.Len(t, errors, 1)
	assert.Equal(t, "trip_revenue_and_non_public", errors[0].Code)
}
