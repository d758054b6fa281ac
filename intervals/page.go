package intervals

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"rating-manager/geo"
)

// OSMQueryURL links to the OpenStreetMap features near the stop.
func (s Stop) OSMQueryURL() string {
	return fmt.Sprintf(
		"https://www.openstreetmap.org/query?lat=%v&lon=%v#map=18/%v/%v",
		s.Lat, s.Lon, s.Lat, s.Lon)
}

// MBTAURL links to the stop page on mbta.com.
func (s Stop) MBTAURL() string {
	return "https://www.mbta.com/stops/" + s.ID
}

// V3APIURL links to the stop in the V3 API.
func (s Stop) V3APIURL() string {
	return "https://api-v3.mbta.com/stops/" + s.ID
}

// GoogleMapsURL links to driving directions between the interval's stops.
func (i Interval) GoogleMapsURL() string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&travelmode=driving&origin=%v,%v&destination=%v,%v",
		i.FromStop.Lat, i.FromStop.Lon, i.ToStop.Lat, i.ToStop.Lon)
}

// OSMDirectionsURL links to OSRM driving directions between the
// interval's stops.
func (i Interval) OSMDirectionsURL() string {
	return fmt.Sprintf(
		"https://www.openstreetmap.org/directions?engine=fossgis_osrm_car&route=%v,%v;%v,%v",
		i.FromStop.Lat, i.FromStop.Lon, i.ToStop.Lat, i.ToStop.Lon)
}

// Result is one row in a calculation's results table.
type Result struct {
	Name  string
	Value string
}

// Calculation is an interval plus the straight-line estimate between its
// stops. The estimate gives the schedulers a sanity check for the
// distance they enter by hand.
type Calculation struct {
	Interval     Interval
	EstimateFeet int
	Bearing      int
}

// Calculate builds the Calculation for an interval.
func Calculate(interval Interval) Calculation {
	calc := Calculation{Interval: interval}
	if interval.Located() {
		from, to := interval.FromStop, interval.ToStop
		meters := geo.DistanceMeters(from.Lat, from.Lon, to.Lat, to.Lon)
		calc.EstimateFeet = geo.MetersToFeet(meters)
		calc.Bearing = int(math.Round(geo.InitialBearing(from.Lat, from.Lon, to.Lat, to.Lon)))
	}
	return calc
}

// Results lists the known and estimated distances for the interval.
func (c Calculation) Results() []Result {
	var results []Result
	if c.Interval.DistanceBetweenMeasured != nil && *c.Interval.DistanceBetweenMeasured != 0 {
		results = append(results, Result{"Measured", fmt.Sprintf("%d", *c.Interval.DistanceBetweenMeasured)})
	}
	if c.Interval.DistanceBetweenMap != nil && *c.Interval.DistanceBetweenMap != 0 {
		results = append(results, Result{"Map", fmt.Sprintf("%d", *c.Interval.DistanceBetweenMap)})
	}
	if c.Interval.Located() {
		results = append(results, Result{
			"Straight line (estimate)",
			fmt.Sprintf("%d (bearing %d°)", c.EstimateFeet, c.Bearing),
		})
	}
	if len(results) == 0 {
		results = append(results, Result{"Empty", "0"})
	}
	return results
}

// Page is a full HTML page of interval calculations.
type Page struct {
	Calculations []Calculation
}

// NewPage builds a Page from intervals. It returns nil when no interval
// has locations to render.
func NewPage(all []Interval) *Page {
	located := false
	for _, interval := range all {
		if interval.Located() {
			located = true
			break
		}
	}
	if !located {
		return nil
	}

	page := &Page{}
	for _, interval := range all {
		page.Calculations = append(page.Calculations, Calculate(interval))
	}
	return page
}

// Scripts are loaded in the page header.
func (p *Page) Scripts() []string {
	return []string{
		"https://cdn.jsdelivr.net/npm/leaflet@1.6.0/dist/leaflet.js",
	}
}

// Stylesheets are loaded in the page header.
func (p *Page) Stylesheets() []string {
	return []string{
		"https://cdn.jsdelivr.net/npm/leaflet@1.6.0/dist/leaflet.css",
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta http-equiv="content-type" content="text/html; charset=UTF-8" />
  <meta name="viewport" content="width=device-width,
        initial-scale=1.0, maximum-scale=1.0, user-scalable=no" />
  <style type="text/css">
    html {
      padding: 2em;
    }
    td {
      padding: 0 3em 1em;
    }
    td:first-child {
      padding-left: 0;
    }
    .interval-map {
      display: block;
      height: 30em;
      width: 50em;
    }
  </style>
  {{range .Scripts}}<script defer src="{{.}}"></script>
  {{end}}
  {{range .Stylesheets}}<link rel="stylesheet" href="{{.}}"/>
  {{end}}
</head>
<body>
  {{range $index, $calc := .Calculations}}
  {{if $index}}<hr>{{end}}
  <div>
    <table>
      <thead>
        <tr>
          <th>From</th>
          <th>To</th>
        </tr>
      </thead>
      <tbody>
        <tr>
          <td>{{template "stop" $calc.Interval.FromStop}}</td>
          <td>{{template "stop" $calc.Interval.ToStop}}</td>
        </tr>
      </tbody>
    </table>
    <table>
      <thead>
        <tr>
          <th>Interval Type</th>
          <th>Description</th>
          <th>Directions</th>
        </tr>
      </thead>
      <tbody>
        <tr>
          <td>{{$calc.Interval.TypeName}}</td>
          <td>{{$calc.Interval.Description}}</td>
          <td>
            {{if $calc.Interval.Located}}
            <a target="_blank" href="{{$calc.Interval.GoogleMapsURL}}">Google Maps</a><br>
            <a target="_blank" href="{{$calc.Interval.OSMDirectionsURL}}">OpenStreetMap</a><br>
            {{end}}
          </td>
        </tr>
      </tbody>
    </table>
    <table>
      <thead>
        <tr>
          <th>Route</th>
          <th>Length (ft)</th>
        </tr>
      </thead>
      <tbody>
        {{range $calc.Results}}
        <tr>
          <td>{{.Name}}</td>
          <td>{{.Value}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{if $calc.Interval.Located}}
    <div class="interval-map" id="map-{{$index}}"></div>
    <script type="text/javascript">
      window.addEventListener('DOMContentLoaded', function() {
        var map = L.map("map-{{$index}}");
        var from = L.marker([{{$calc.Interval.FromStop.Lat}}, {{$calc.Interval.FromStop.Lon}}]).addTo(map);
        var to = L.marker([{{$calc.Interval.ToStop.Lat}}, {{$calc.Interval.ToStop.Lon}}]).addTo(map);
        var line = L.polyline([from.getLatLng(), to.getLatLng()], {color: 'red'}).addTo(map);
        L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
          maxZoom: 19,
          attribution: '&copy; OpenStreetMap contributors'
        }).addTo(map);
        map.fitBounds(line.getBounds(), {padding: [30, 30]});
      });
    </script>
    {{end}}
  </div>
  {{end}}
</body>
</html>
{{define "stop"}}{{.Description}} ({{.ID}})<br>
{{if .Located}}<a href="{{.OSMQueryURL}}">OpenStreetMap</a><br>{{end}}
<a href="{{.MBTAURL}}">MBTA.com</a><br>
<a href="{{.V3APIURL}}">V3 API</a>{{end}}`))

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return pageTemplate.Execute(w, p)
}
