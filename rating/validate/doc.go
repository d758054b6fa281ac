// Package validate checks a merged rating for problems that would break
// (or silently corrupt) a TransitMaster import.
//
// Each check is a Validator over the rating's parsed files, returning a
// list of Errors. Rating runs every validator and deduplicates the
// results, so callers get one line per distinct problem.
package validate
