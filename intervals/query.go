package intervals

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// intervalSQL selects revenue intervals (via pattern_geo_interval_xref)
// and deadhead intervals (via deadheads) for the latest timetable
// version. The WHERE fragment is substituted into both halves of the
// UNION, so any parameters must be passed twice.
const intervalSQL = `
SET NOCOUNT ON;

DECLARE @ttvid numeric(9);
SELECT
  @ttvid = MAX(time_table_version_id)
FROM time_table_version;

SELECT
  @ttvid + 0.2 AS RouteVersionId,
  gni.interval_id AS IntervalId,
  0 AS IntervalType,
  gn1.geo_node_abbr AS FromStopNumber,
  gn1.geo_node_name AS FromStopDescription,
  (CASE
        WHEN gn1.use_survey = 1 THEN gn1.latitude
        ELSE gn1.map_latitude END) / 10000000
  AS FromStopLatitude,
  (CASE
        WHEN gn1.use_survey = 1 THEN gn1.longitude
        ELSE gn1.map_longitude END) / 10000000
  AS FromStopLongitude,
  gn2.geo_node_abbr AS ToStopNumber,
  gn2.geo_node_name AS ToStopDescription,
  (CASE
        WHEN gn2.use_survey = 1 THEN gn2.latitude
        ELSE gn2.map_latitude END) / 10000000
  AS ToStopLatitude,
  (CASE
        WHEN gn2.use_survey = 1 THEN gn2.longitude
        ELSE gn2.map_longitude END) / 10000000
  AS ToStopLongitude,
  MIN(RTRIM(r.route_abbr)) AS Route,
  MIN(RTRIM(rd.route_direction_name)) AS Direction,
  MIN(RTRIM(p.pattern_abbr)) AS Pattern,
  gni.distance_between_map AS DistanceBetweenMap,
  gni.distance_between_measured AS DistanceBetweenMeasured,
  CAST(gni.use_map AS int) AS UseMap
FROM pattern_geo_interval_xref pgix
INNER JOIN pattern p
  ON pgix.pattern_id = p.pattern_id
INNER JOIN route r
  ON p.route_id = r.route_id
INNER JOIN route_direction rd
  ON p.route_direction_id = rd.route_direction_id
INNER JOIN geo_node_interval gni
  ON pgix.geo_node_interval_id = gni.interval_id
INNER JOIN geo_node gn1
  ON gni.start_point_id = gn1.geo_node_id
INNER JOIN geo_node gn2
  ON gni.end_point_id = gn2.geo_node_id
WHERE pgix.time_table_version_id = @ttvid
AND (%[1]s)
GROUP BY gni.interval_id,
         gni.distance_between_map,
         gni.distance_between_measured,
         gni.use_map,
         gn1.geo_node_abbr,
         gn1.geo_node_name,
         gn1.use_survey,
         gn1.latitude,
         gn1.map_latitude,
         gn1.longitude,
         gn1.map_longitude,
         gn2.geo_node_abbr,
         gn2.geo_node_name,
         gn2.use_survey,
         gn2.latitude,
         gn2.map_latitude,
         gn2.longitude,
         gn2.map_longitude
UNION
SELECT
  @ttvid + 0.2 AS RouteVersionId,
  gni.interval_id AS IntervalId,
  dh.dh_type AS IntervalType,
  gn1.geo_node_abbr AS FromStopNumber,
  gn1.geo_node_name AS FromStopDescription,
  (CASE
        WHEN gn1.use_survey = 1 THEN gn1.latitude
        ELSE gn1.map_latitude END) / 10000000
  AS FromStopLatitude,
  (CASE
        WHEN gn1.use_survey = 1 THEN gn1.longitude
        ELSE gn1.map_longitude END) / 10000000
  AS FromStopLongitude,
  gn2.geo_node_abbr AS ToStopNumber,
  gn2.geo_node_name AS ToStopDescription,
  (CASE
        WHEN gn2.use_survey = 1 THEN gn2.latitude
        ELSE gn2.map_latitude END) / 10000000
  AS ToStopLatitude,
  (CASE
        WHEN gn2.use_survey = 1 THEN gn2.longitude
        ELSE gn2.map_longitude END) / 10000000
  AS ToStopLongitude,
  MIN(RTRIM(r.route_abbr)) AS Route,
  MIN(RTRIM(rd.route_direction_name)) AS Direction,
  MIN(RTRIM(p.pattern_abbr)) AS Pattern,
  gni.distance_between_map AS DistanceBetweenMap,
  gni.distance_between_measured AS DistanceBetweenMeasured,
  CAST(gni.use_map AS int) AS UseMap
FROM deadheads dh
INNER JOIN pattern p
  ON dh.pattern_id = p.pattern_id
INNER JOIN route r
  ON p.route_id = r.route_id
INNER JOIN route_direction rd
  ON p.route_direction_id = rd.route_direction_id
INNER JOIN geo_node_interval gni
  ON dh.geo_node_interval_id = gni.interval_id
INNER JOIN geo_node gn1
  ON gni.start_point_id = gn1.geo_node_id
INNER JOIN geo_node gn2
  ON gni.end_point_id = gn2.geo_node_id
WHERE dh.time_table_version_id = @ttvid
AND (%[1]s)
GROUP BY gni.interval_id,
         gni.distance_between_map,
         gni.distance_between_measured,
         gni.use_map,
         dh.dh_type,
         gn1.geo_node_abbr,
         gn1.geo_node_name,
         gn1.use_survey,
         gn1.latitude,
         gn1.map_latitude,
         gn1.longitude,
         gn1.map_longitude,
         gn2.geo_node_abbr,
         gn2.geo_node_name,
         gn2.use_survey,
         gn2.latitude,
         gn2.map_latitude,
         gn2.longitude,
         gn2.map_longitude
ORDER BY IntervalType,
Route,
Direction,
Pattern;
`

// SQL builds the interval query for a WHERE fragment, duplicating the
// parameters to cover both halves of the UNION.
func SQL(where string, parameters []interface{}) (string, []interface{}) {
	doubled := make([]interface{}, 0, 2*len(parameters))
	doubled = append(doubled, parameters...)
	doubled = append(doubled, parameters...)
	return fmt.Sprintf(intervalSQL, where), doubled
}

// ReadDatabase runs the interval query against TransitMaster, returning
// the column names and the rows as string maps. Keeping the rows as
// strings lets the same data round-trip through the CSV input/output
// flags.
func ReadDatabase(db *gorm.DB, where string, parameters []interface{}) ([]string, []map[string]string, error) {
	query, args := SQL(where, parameters)
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result []map[string]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil, err
		}
		row := make(map[string]string, len(columns))
		for i, column := range columns {
			row[column] = values[i].String
		}
		result = append(result, row)
	}
	return columns, result, rows.Err()
}
