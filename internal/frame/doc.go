// Package frame groups physical lines into logical log records.
//
// A record is a run of lines terminated by one blank line; the final
// record of a file needs no trailing blank line. Reader works front to
// back over any byte stream; RevReader works back to front over a
// seekable source, and pads each yielded record with synthetic
// trailing terminators so both directions expose byte-identical
// record layouts.
//
// Both framers reuse a single entry.Entry as scratch storage. A read
// failure exhausts the framer permanently and surfaces through Err;
// running out of records does not.
package frame
