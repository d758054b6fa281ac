package compare

import (
	"fmt"
	"io"

	"gorm.io/gorm"

	"rating-manager/core/database"
	"rating-manager/geo"
	"rating-manager/rating"
	"rating-manager/rating/hastus"
)

// StreetViewURL links to the Google Street View panorama at a location.
//
// https://developers.google.com/maps/documentation/urls/get-started#street-view-action
func StreetViewURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps/@?api=1&map_action=pano&viewpoint=%v,%v", lat, lon)
}

// Locations compares the rating's stop locations against the GEO_NODE
// table in TransitMaster, writing one CSV row per stop with both
// locations, the distance between them, and Street View links.
func Locations(r *rating.Rating, db *gorm.DB, w io.Writer) error {
	records, err := r.Records("nde")
	if err != nil {
		return err
	}
	stops := map[string]hastus.Stop{}
	var stopIDs []string
	for _, record := range records {
		stop, ok := record.(hastus.Stop)
		if !ok || stop.EastingFt == 0 || stop.NorthingFt == 0 {
			continue
		}
		if _, seen := stops[stop.StopID]; !seen {
			stopIDs = append(stopIDs, stop.StopID)
		}
		stops[stop.StopID] = stop
	}
	sortStopIDs(stopIDs)

	nodes, err := database.GeoNodes(db, stopIDs)
	if err != nil {
		return err
	}
	located := map[string]database.GeoNode{}
	for _, node := range nodes {
		if node.Latitude != nil && node.Longitude != nil {
			located[node.StopID] = node
		}
	}

	if _, err := fmt.Fprintln(w,
		"stop_id,stop_name,hastus_lat,hastus_lon,tm_lat,tm_lon,distance_m,"+
			"hastus_street_view,tm_street_view"); err != nil {
		return err
	}

	for _, stopID := range stopIDs {
		stop := stops[stopID]
		lat, lon := stop.LatLon()

		tmLat, tmLon, distance := "", "", ""
		tmStreetView := ""
		if node, ok := located[stopID]; ok {
			tmLat = fmt.Sprintf("%.6f", *node.Latitude)
			tmLon = fmt.Sprintf("%.6f", *node.Longitude)
			distance = fmt.Sprintf("%d",
				int(geo.DistanceMeters(lat, lon, *node.Latitude, *node.Longitude)))
			tmStreetView = StreetViewURL(*node.Latitude, *node.Longitude)
		}

		_, err := fmt.Fprintf(w, "%s,%s,%.6f,%.6f,%s,%s,%s,%q,%q\n",
			stopID, stop.Name, lat, lon, tmLat, tmLon, distance,
			StreetViewURL(lat, lon), tmStreetView)
		if err != nil {
			return err
		}
	}
	return nil
}
