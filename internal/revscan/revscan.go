package revscan

import (
	"bytes"
	"fmt"
	"io"
)

// Scanner yields successive delimiter-bounded byte spans from a
// seekable source, scanning backward from the end. It owns one
// fixed-capacity scratch buffer; spans are copied out and stay valid
// after the next refill.
type Scanner struct {
	r      io.ReadSeeker
	pos    int64
	buf    []byte
	bufPos int
	delim  byte
	skip   int
	err    error
}

// New positions the scanner at the end of r. delim is the (single)
// byte scanned for; skip is the number of bytes dropped at each
// delimiter when assembling spans, so a multi-byte terminator whose
// scan byte comes first (e.g. "\r\n" scanned on '\r') is removed
// whole. capacity is the scratch buffer size; any capacity >= 1
// works, including capacities smaller than one record.
func New(r io.ReadSeeker, delim byte, skip, capacity int) (*Scanner, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("revscan: capacity %d, need at least 1", capacity)
	}
	if skip < 1 {
		return nil, fmt.Errorf("revscan: skip length %d, need at least 1", skip)
	}
	pos, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("revscan: seek to end: %w", err)
	}
	return &Scanner{
		r:     r,
		pos:   pos,
		buf:   make([]byte, capacity),
		delim: delim,
		skip:  skip,
	}, nil
}

// Next returns the next span of bytes strictly between two delimiter
// occurrences, working backward through the source. Consecutive
// delimiters yield empty spans. Once the start of the source is
// reached any remaining content is returned exactly once; after that
// Next reports ok == false. A false ok with a non-nil Err means the
// scan failed rather than finished.
func (s *Scanner) Next() ([]byte, bool) {
	if s.err != nil {
		return nil, false
	}

	var span []byte
	for {
		if s.bufPos == 0 {
			var n int
			switch {
			case s.pos >= int64(len(s.buf)):
				n = len(s.buf)
			case s.pos > 0:
				n = int(s.pos)
			default:
				if len(span) > 0 {
					return span, true
				}
				return nil, false
			}

			s.pos -= int64(n)
			if _, err := s.r.Seek(s.pos, io.SeekStart); err != nil {
				s.err = fmt.Errorf("revscan: seek: %w", err)
				return nil, false
			}
			if _, err := io.ReadFull(s.r, s.buf[:n]); err != nil {
				s.err = fmt.Errorf("revscan: read block: %w", err)
				return nil, false
			}
			s.bufPos = n
		}

		if i := bytes.LastIndexByte(s.buf[:s.bufPos], s.delim); i >= 0 {
			start := i + s.skip
			if start > s.bufPos {
				// The terminator straddles two buffer loads; its tail
				// bytes were already prepended from the later load.
				over := start - s.bufPos
				if over > len(span) {
					over = len(span)
				}
				span = span[over:]
				start = s.bufPos
			}
			span = pushFront(span, s.buf[start:s.bufPos])
			s.bufPos = i
			return span, true
		}

		span = pushFront(span, s.buf[:s.bufPos])
		s.bufPos = 0
	}
}

// Err returns the first I/O failure, or nil. Reaching the start of the
// source is not an error.
func (s *Scanner) Err() error { return s.err }

// pushFront prepends src to dst, copying out of the scratch buffer so
// the result survives the next refill.
func pushFront(dst, src []byte) []byte {
	if len(src) == 0 {
		return dst
	}
	joined := make([]byte, 0, len(src)+len(dst))
	joined = append(joined, src...)
	return append(joined, dst...)
}
