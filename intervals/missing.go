package intervals

import (
	"regexp"

	"gorm.io/gorm"
)

// WhereMissing selects intervals with neither a measured nor a map
// distance.
const WhereMissing = `
(gni.distance_between_measured = 0
  OR gni.distance_between_measured IS NULL)
AND
(gni.distance_between_map = 0
  OR gni.distance_between_map IS NULL)
`

// ignoreRe strips the parts of a stop description that vary between two
// ends of a trivial interval (berth numbers, Inbound/Outbound).
var ignoreRe = regexp.MustCompile(`\d|Inbound|Outbound`)

type stopPair struct {
	From string
	To   string
}

// ignoredPairs are known-adjacent stops whose missing distances are fine.
var ignoredPairs = map[stopPair]bool{
	// N Main St opp Short St to N Main St opp Memorial Pkwy
	{"4191", "4277"}: true,
	// 205 Washington St @ East Walpole Loop to 238 Washington St opp May St
	{"73619", "89617"}: true,
	// Shirley St @ Washington Ave to Veterans Rd @ Washington Ave
	{"109898", "109821"}: true,
	// Lynn New Busway to Market St @ Commuter Rail
	{"censq", "16653"}: true,
	// Lynn Commuter Rail Busway to Lynn New Busway
	{"14748", "censq"}: true,
	// Fellsway Garage to Salem St @ Fellsway Garage
	{"fell", "5333"}: true,
	// North Cambridge trackless to North Cambridge Carhouse
	{"ncamb", "12295"}: true,
	// North Cambridge Carhouse to North Cambridge trackless
	{"12295", "ncamb"}: true,
}

// ShouldIgnore reports whether a missing interval is not worth flagging:
// the stops are a known pair, or their descriptions match once digits
// and Inbound/Outbound are stripped.
func ShouldIgnore(interval Interval) bool {
	if ignoredPairs[stopPair{interval.FromStop.ID, interval.ToStop.ID}] {
		return true
	}
	return ignoreRe.ReplaceAllString(interval.FromStop.Description, "") ==
		ignoreRe.ReplaceAllString(interval.ToStop.Description, "")
}

// ReadMissing reads the intervals with no distances from TransitMaster.
func ReadMissing(db *gorm.DB) ([]string, []map[string]string, error) {
	return ReadDatabase(db, WhereMissing, nil)
}

// FilterIgnored drops the intervals ShouldIgnore flags.
func FilterIgnored(all []Interval) []Interval {
	var kept []Interval
	for _, interval := range all {
		if !ShouldIgnore(interval) {
			kept = append(kept, interval)
		}
	}
	return kept
}
