package frame

import (
	"fmt"
	"io"

	"github.com/loglens/loglens/internal/entry"
	"github.com/loglens/loglens/internal/revscan"
)

// RevReader frames records back to front from a seekable source,
// yielding them newest first. It implements entry.Stream over a
// single reused Entry.
type RevReader struct {
	scanner *revscan.Scanner
	eol     []byte
	entry   *entry.Entry
	err     error
}

// NewRevReader frames records backward from r using the given EOL
// sequence and scratch-buffer capacity. Construction faults (empty
// EOL, capacity < 1) are reported before any record is read.
func NewRevReader(r io.ReadSeeker, eol []byte, capacity, source int) (*RevReader, error) {
	if len(eol) == 0 {
		return nil, fmt.Errorf("frame: empty EOL sequence")
	}
	scanner, err := revscan.New(r, eol[0], len(eol), capacity)
	if err != nil {
		return nil, err
	}
	return &RevReader{
		scanner: scanner,
		eol:     append([]byte(nil), eol...),
		entry:   entry.New(source),
	}, nil
}

// Advance accumulates lines backward until a blank line closes the
// record, then synthesizes the trailing terminator padding so
// byte-offset field extraction sees the same layout a forward read
// would.
func (f *RevReader) Advance() {
	f.entry.Reset()
	if f.err != nil {
		return
	}

scan:
	for {
		span, ok := f.scanner.Next()
		if !ok {
			if err := f.scanner.Err(); err != nil {
				f.err = err
				f.entry.Reset()
				return
			}
			break
		}

		switch {
		case len(span) > 0 && f.entry.Empty():
			f.entry.SetBytes(span)
		case len(span) > 0:
			f.entry.Prepend(span, f.eol)
		case f.entry.Empty():
			// Blank padding below the last record; keep scanning.
		default:
			// Blank line above accumulated content: record boundary.
			break scan
		}
	}

	if !f.entry.Empty() {
		f.entry.Append(f.eol)
		f.entry.Append(f.eol)
	}
}

// Current returns the live entry, or nil once the source start has
// been consumed.
func (f *RevReader) Current() *entry.Entry {
	if f.entry.Empty() {
		return nil
	}
	return f.entry
}

// Err returns the first scan failure, or nil.
func (f *RevReader) Err() error { return f.err }
