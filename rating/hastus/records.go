package hastus

import (
	"strconv"
	"strings"
	"time"
)

// TripRevenueType classifies a trip or pattern stop by revenue service.
type TripRevenueType int

const (
	NonRevenue TripRevenueType = iota
	Revenue
	Opportunity
)

// RevenueTypeFor converts the export flag ("1", "X", "0" or blank) to a
// TripRevenueType.
func RevenueTypeFor(field string) TripRevenueType {
	switch strings.TrimSpace(field) {
	case "1":
		return Revenue
	case "X":
		return Opportunity
	default:
		return NonRevenue
	}
}

// IsRevenue returns true for trips that carry passengers.
func (t TripRevenueType) IsRevenue() bool {
	return t == Revenue || t == Opportunity
}

func (t TripRevenueType) String() string {
	switch t {
	case Revenue:
		return "Revenue"
	case Opportunity:
		return "Opportunity"
	default:
		return "NonRevenue"
	}
}

// PlaceTime is a (place abbreviation, clock time) pair from a block or
// crew piece.
type PlaceTime struct {
	Place string
	Time  ClockTime
}

// Pattern is a unique description for a list of stops.
type Pattern struct {
	RouteID       string
	PatternID     string
	DirectionName string
	SignCode      *int
	Variant       string
	VariantName   string
}

func (Pattern) Tag() string { return "PAT" }

func patternFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 8); err != nil {
		return nil, err
	}
	signCode, err := optionalInt(parts[4])
	if err != nil {
		return nil, err
	}
	return Pattern{
		RouteID:       strings.TrimSpace(parts[0]),
		PatternID:     parts[1],
		DirectionName: strings.TrimSpace(parts[2]),
		SignCode:      signCode,
		Variant:       strings.TrimSpace(parts[6]),
		VariantName:   parts[7],
	}, nil
}

// PatternStop is a stop on a Pattern.
type PatternStop struct {
	StopID      string
	TimepointID string
	SignCode    *int
	RevenueType TripRevenueType
}

func (PatternStop) Tag() string { return "TPS" }

func patternStopFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 4); err != nil {
		return nil, err
	}
	signCode, err := optionalInt(parts[2])
	if err != nil {
		return nil, err
	}
	return PatternStop{
		StopID:      strings.TrimSpace(parts[0]),
		TimepointID: strings.TrimSpace(parts[1]),
		SignCode:    signCode,
		RevenueType: RevenueTypeFor(parts[3]),
	}, nil
}

// TimepointPattern is a list of timepoints for a given route pattern.
type TimepointPattern struct {
	RouteID            string
	DirectionName      string
	TimepointPatternID string
	Timepoints         []string
}

func (TimepointPattern) Tag() string { return "PPAT" }

func timepointPatternFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 5); err != nil {
		return nil, err
	}
	var timepoints []string
	// the final field is a route suffix, not a timepoint
	for _, field := range parts[4 : len(parts)-1] {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			timepoints = append(timepoints, trimmed)
		}
	}
	return TimepointPattern{
		RouteID:            strings.TrimSpace(parts[0]),
		DirectionName:      strings.TrimSpace(parts[1]),
		TimepointPatternID: strings.TrimSpace(parts[3]),
		Timepoints:         timepoints,
	}, nil
}

// Calendar is a start/end date range for a garage.
type Calendar struct {
	StartDate time.Time
	EndDate   time.Time
	Garage    string
}

func (Calendar) Tag() string { return "CAL" }

func calendarFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 3); err != nil {
		return nil, err
	}
	startDate, err := parseDate(parts[0])
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(parts[1])
	if err != nil {
		return nil, err
	}
	return Calendar{
		StartDate: startDate,
		EndDate:   endDate,
		Garage:    strings.TrimSpace(parts[2]),
	}, nil
}

// CalendarDate is a specific date for which a service is active.
type CalendarDate struct {
	Date       time.Time
	Garage     string
	ServiceKey string
	DayType    string
}

func (CalendarDate) Tag() string { return "DAT" }

func calendarDateFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 4); err != nil {
		return nil, err
	}
	date, err := parseDate(parts[0])
	if err != nil {
		return nil, err
	}
	return CalendarDate{
		Date:       date,
		Garage:     strings.TrimSpace(parts[1]),
		ServiceKey: serviceKey(parts[2]),
		DayType:    strings.TrimSpace(parts[3]),
	}, nil
}

// Stop is a stop, with its location in Massachusetts state plane feet.
type Stop struct {
	StopID       string
	Name         string
	TimepointID  string
	EastingFt    float64
	NorthingFt   float64
	OnStreet     string
	AtStreet     string
	Municipality string
	InService    bool
}

func (Stop) Tag() string { return "STP" }

// LatLon converts the stop's state plane coordinates to a NAD83
// latitude/longitude in degrees.
func (s Stop) LatLon() (float64, float64) {
	return StatePlaneToLatLon(s.EastingFt, s.NorthingFt)
}

func stopFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 12); err != nil {
		return nil, err
	}
	easting, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return nil, err
	}
	northing, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
	if err != nil {
		return nil, err
	}
	return Stop{
		StopID:       strings.TrimSpace(parts[0]),
		Name:         strings.TrimSpace(parts[1]),
		TimepointID:  strings.TrimSpace(parts[2]),
		EastingFt:    easting,
		NorthingFt:   northing,
		OnStreet:     strings.TrimSpace(parts[5]),
		AtStreet:     strings.TrimSpace(parts[6]),
		Municipality: strings.TrimSpace(parts[9]),
		InService:    booleanInteger(parts[11]),
	}, nil
}

// Route is a route from the RTE file.
type Route struct {
	RouteID     string
	RouteType   string
	VehicleType string
}

func (Route) Tag() string { return "RTE" }

func routeFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 5); err != nil {
		return nil, err
	}
	return Route{
		RouteID:     strings.TrimSpace(parts[0]),
		RouteType:   strings.TrimSpace(parts[2]),
		VehicleType: strings.TrimSpace(parts[4]),
	}, nil
}

// Version is a vehicle schedule header (VSC) from the BLK file.
type Version struct {
	ServiceKey  string
	DayType     string
	Garage      string
	Description string
}

func (Version) Tag() string { return "VSC" }

func versionFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 7); err != nil {
		return nil, err
	}
	return Version{
		ServiceKey:  serviceKey(parts[0]),
		DayType:     strings.TrimSpace(parts[1]),
		Garage:      strings.TrimSpace(parts[5]),
		Description: strings.TrimSpace(parts[6]),
	}, nil
}

// Block is a vehicle block: pull-out, first stop, last stop and pull-in.
type Block struct {
	BlockID    string
	PieceID    string
	ServiceKey string
	Times      []PlaceTime
}

func (Block) Tag() string { return "BLK" }

func blockFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 15); err != nil {
		return nil, err
	}
	times, err := placeTimes(parts, 3)
	if err != nil {
		return nil, err
	}
	return Block{
		BlockID:    strings.TrimSpace(parts[0]),
		PieceID:    strings.TrimSpace(parts[1]),
		ServiceKey: strings.TrimSpace(parts[14]),
		Times:      times,
	}, nil
}

// TripIdentifier links a trip to the enclosing block.
type TripIdentifier struct {
	TripID string
}

func (TripIdentifier) Tag() string { return "TIN" }

func tripIdentifierFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 1); err != nil {
		return nil, err
	}
	return TripIdentifier{TripID: strings.TrimSpace(parts[0])}, nil
}

// Trip is a trip from the TRP file.
type Trip struct {
	TripID      string
	RouteID     string
	PatternID   string
	Description string
	Sequence    int
	NonPublic   bool
	RevenueType TripRevenueType
}

func (Trip) Tag() string { return "TRP" }

// AsDirected returns true for trips on the ride/work-as-directed routes,
// which are exempt from most validations.
func (t Trip) AsDirected() bool {
	return t.RouteID == "rad" || t.RouteID == "wad"
}

func tripFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 9); err != nil {
		return nil, err
	}
	sequence, err := strconv.Atoi(strings.TrimSpace(parts[6]))
	if err != nil {
		return nil, err
	}
	return Trip{
		TripID:      strings.TrimSpace(parts[0]),
		RouteID:     strings.TrimSpace(parts[3]),
		PatternID:   strings.TrimSpace(parts[4]),
		Description: strings.TrimSpace(parts[5]),
		Sequence:    sequence,
		NonPublic:   booleanInteger(parts[7]),
		RevenueType: RevenueTypeFor(parts[8]),
	}, nil
}

// TripTime is a single timepoint crossing time (PTS) for the enclosing trip.
type TripTime struct {
	Time ClockTime
}

func (TripTime) Tag() string { return "PTS" }

func tripTimeFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 1); err != nil {
		return nil, err
	}
	clock, err := ParseClockTime(parts[0])
	if err != nil {
		return nil, err
	}
	return TripTime{Time: clock}, nil
}

// CrewSchedule is a crew schedule header (CSC) from the CRW file.
type CrewSchedule struct {
	ServiceKey  string
	DayType     string
	GarageName  string
	Description string
}

func (CrewSchedule) Tag() string { return "CSC" }

func crewScheduleFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 7); err != nil {
		return nil, err
	}
	return CrewSchedule{
		ServiceKey:  serviceKey(parts[0]),
		DayType:     strings.TrimSpace(parts[1]),
		GarageName:  strings.TrimSpace(parts[5]),
		Description: strings.TrimSpace(parts[6]),
	}, nil
}

// Piece is one operator piece of work (PCE) from the CRW file.
type Piece struct {
	RunID      string
	PieceID    string
	ServiceKey string
	Times      []PlaceTime
}

func (Piece) Tag() string { return "PCE" }

func pieceFromLine(parts []string) (Record, error) {
	if err := requireParts(parts, 14); err != nil {
		return nil, err
	}
	times, err := placeTimes(parts, 5)
	if err != nil {
		return nil, err
	}
	return Piece{
		RunID:      strings.TrimSpace(parts[0]),
		PieceID:    strings.TrimSpace(parts[3]),
		ServiceKey: strings.TrimSpace(parts[13]),
		Times:      times,
	}, nil
}

// placeTimes parses the four (place, time) pairs starting at offset.
func placeTimes(parts []string, offset int) ([]PlaceTime, error) {
	times := make([]PlaceTime, 0, 4)
	for i := 0; i < 4; i++ {
		place := strings.TrimSpace(parts[offset+2*i])
		clock, err := ParseClockTime(parts[offset+2*i+1])
		if err != nil {
			return nil, err
		}
		times = append(times, PlaceTime{Place: place, Time: clock})
	}
	return times, nil
}
