package intervals

import (
	"strings"

	"gorm.io/gorm"
)

// WhereForStops builds a WHERE fragment matching intervals that start or
// end at any of the given stop IDs.
func WhereForStops(stopIDs []string) (string, []interface{}) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(stopIDs)), ",")
	where := "gn1.geo_node_abbr IN (" + placeholders + ") OR gn2.geo_node_abbr IN (" + placeholders + ")"

	// the WHERE fragment has two IN clauses, so the IDs go in twice
	parameters := make([]interface{}, 0, 2*len(stopIDs))
	for i := 0; i < 2; i++ {
		for _, stopID := range stopIDs {
			parameters = append(parameters, stopID)
		}
	}
	return where, parameters
}

// ReadForStops reads the intervals touching the given stops from
// TransitMaster.
func ReadForStops(db *gorm.DB, stopIDs []string) ([]string, []map[string]string, error) {
	where, parameters := WhereForStops(stopIDs)
	return ReadDatabase(db, where, parameters)
}
