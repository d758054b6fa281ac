// Package database manages the connection to the TransitMaster SQL Server
// database (TMMain).
//
// The connection is read-only in practice: the tools use it to look up stop
// locations (GEO_NODE) and timetable intervals while preparing or auditing a
// rating. Connection parameters come from the TRANSITMASTER_* environment
// variables via core/config.
//
// Connections are pooled and verified with a ping before use, so callers can
// distinguish "server unreachable" from "query failed" up front.
package database
