// Package export writes built records.
//
// [FileSink] writes one "<id>.json" (or "<id>.yaml") file per record into an
// export directory, replacing each file atomically. [ObjectSink] puts the
// same bytes into an S3-compatible bucket. [Tee] fans one record out to
// several sinks.
package export
