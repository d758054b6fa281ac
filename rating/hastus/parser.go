package hastus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Record is a single parsed line from a TransitMaster export file.
type Record interface {
	// Tag returns the record tag the line started with.
	Tag() string
}

type fromLine func(parts []string) (Record, error)

var tagParsers = map[string]fromLine{
	"PAT":  patternFromLine,
	"TPS":  patternStopFromLine,
	"PPAT": timepointPatternFromLine,
	"CAL":  calendarFromLine,
	"DAT":  calendarDateFromLine,
	"STP":  stopFromLine,
	"RTE":  routeFromLine,
	"VSC":  versionFromLine,
	"BLK":  blockFromLine,
	"TIN":  tripIdentifierFromLine,
	"TRP":  tripFromLine,
	"PTS":  tripTimeFromLine,
	"CSC":  crewScheduleFromLine,
	"PCE":  pieceFromLine,
}

// ParseLine parses a single export line into a Record.
func ParseLine(line string) (Record, error) {
	fields := strings.Split(line, ";")
	tag := fields[0]
	parts := fields[1:]

	parser, ok := tagParsers[tag]
	if !ok {
		return nil, fmt.Errorf("unknown record tag %q", tag)
	}
	record, err := parser(parts)
	if err != nil {
		return nil, fmt.Errorf("unable to parse line %q: %w", line, err)
	}
	return record, nil
}

// ParseLines parses a slice of export lines into Records.
func ParseLines(lines []string) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		record, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseReader parses every line of an export file. Blank lines are skipped.
func ParseReader(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// optionalInt converts a field to an int, or nil when the field is blank.
func optionalInt(field string) (*int, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// booleanInteger converts a "0"/"1" field to a bool.
func booleanInteger(field string) bool {
	return strings.TrimSpace(field) == "1"
}

// parseDate converts a DDMMYYYY field to a time.Time (UTC, midnight).
func parseDate(field string) (time.Time, error) {
	return time.Parse("02012006", strings.TrimSpace(field))
}

// serviceKey trims an extended service key down to the 3 trailing
// characters TransitMaster actually uses.
func serviceKey(extended string) string {
	trimmed := strings.TrimSpace(extended)
	if len(trimmed) <= 3 {
		return trimmed
	}
	return trimmed[len(trimmed)-3:]
}

func requireParts(parts []string, n int) error {
	if len(parts) < n {
		return fmt.Errorf("expected at least %d fields, got %d", n, len(parts))
	}
	return nil
}
