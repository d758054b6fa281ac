// Package merge combines a HASTUS export (plus the garage test files) into
// one file per export type.
//
// The export types are:
//
//   - NDE: stops
//   - PLC: places
//   - RTE: routes
//   - TRP: trips
//   - PAT: route patterns
//   - PPAT: timepoints
//   - BLK: blocks
//   - CRW: runs
//
// Merging is a plain concatenation in a fixed directory order, so it never
// needs to parse the files it merges.
package merge
