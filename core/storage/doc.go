// Package storage provides the object-storage client used to archive merged
// ratings.
//
// After a rating is merged and validated, `sync --archive` uploads the
// per-type merged files to a bucket so a rating can be reconstructed without
// re-pulling the HASTUS export. The Client interface wraps the small slice
// of the Minio API the archiver needs, which keeps tests free of a live
// endpoint.
package storage
