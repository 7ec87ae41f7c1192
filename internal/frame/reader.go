package frame

import (
	"bufio"
	"fmt"
	"io"

	"github.com/loglens/loglens/internal/entry"
)

// Reader frames records front to back from a byte stream. It
// implements entry.Stream over a single reused Entry.
type Reader struct {
	br      *bufio.Reader
	eolLast byte
	eolLen  int
	entry   *entry.Entry
	err     error
}

// NewReader frames records from r using the given EOL sequence. The
// EOL sequence must not be empty; this is checked before any I/O.
func NewReader(r io.Reader, eol []byte, source int) (*Reader, error) {
	if len(eol) == 0 {
		return nil, fmt.Errorf("frame: empty EOL sequence")
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		br:      br,
		eolLast: eol[len(eol)-1],
		eolLen:  len(eol),
		entry:   entry.New(source),
	}, nil
}

// Advance accumulates physical lines into the entry until a blank
// line closes the record. End of input with no trailing blank line
// still yields the accumulated record exactly once.
func (f *Reader) Advance() {
	f.entry.Reset()
	if f.err != nil {
		return
	}

	for {
		chunk, err := f.br.ReadBytes(f.eolLast)
		n := len(chunk)
		if n > 0 {
			f.entry.Append(chunk)
		}
		if err != nil && err != io.EOF {
			f.err = fmt.Errorf("frame: read record: %w", err)
			f.entry.Reset()
			return
		}

		if n <= f.eolLen {
			if n == 0 || len(f.entry.Bytes()) > f.eolLen {
				return
			}
			// A blank line with nothing accumulated yet is leading
			// padding, not a boundary.
			f.entry.Reset()
		}
	}
}

// Current returns the live entry, or nil once the input is exhausted.
func (f *Reader) Current() *entry.Entry {
	if f.entry.Empty() {
		return nil
	}
	return f.entry
}

// Err returns the first read failure, or nil.
func (f *Reader) Err() error { return f.err }
