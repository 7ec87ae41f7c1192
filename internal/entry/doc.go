// Package entry defines the log record model shared by every stage of
// the pipeline.
//
// # Record format
//
// On disk a log is a sequence of byte records separated by exactly one
// blank physical line. A record optionally opens with a header of the
// shape:
//
//	-<level>:<pid>> <timestamp> <rest of first line>
//
// where <level> is one of d/i/w/c/f (debug, info, warning, critical,
// fatal) and <timestamp> is the fixed-width 23-byte form
// "2006-01-02 15:04:05.000" starting two bytes after the first '>'.
// Records without a recognizable header still flow through the
// pipeline; they simply have no level or timestamp.
//
// # Reused storage
//
// Framers own exactly one Entry and overwrite it on every advance.
// Severity and timestamp are memoized per contents and invalidated by
// every mutation, so a recycled entry never reports stale fields.
// Consumers that keep an entry across advances must Clone it.
//
// # Streams
//
// Stream is the pull-based sequence abstraction the framers, the
// merger, and the filter pipeline all implement or consume. I/O
// failures surface through Err and permanently exhaust the stream;
// running out of records is never an error.
package entry
