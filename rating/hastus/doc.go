// Package hastus parses the semicolon-delimited TransitMaster export files
// produced by HASTUS.
//
// Every line starts with a record tag (PAT, TPS, STP, ...) followed by
// fixed-position fields. ParseLine dispatches on the tag and returns one of
// the record types in this package; ParseReader parses a whole file.
//
// Fields arrive padded with whitespace and are trimmed during parsing.
// Dates are DDMMYYYY, clock times are "hhmm" plus an a/p/x suffix (x marks
// times after midnight), and stop locations are NAD83 Massachusetts state
// plane coordinates in US survey feet, converted to latitude/longitude with
// Stop.LatLon.
package hastus
