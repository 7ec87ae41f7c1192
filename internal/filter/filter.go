package filter

import (
	"bytes"
	"time"

	"github.com/loglens/loglens/internal/entry"
)

// Options configure the filter pipeline. Nil fields (and an empty
// Contains) mean the corresponding filter is not applied.
type Options struct {
	Since    *time.Time
	Until    *time.Time
	MinLevel *entry.Level
	Contains []byte
}

// Active reports whether any filter is configured.
func (o Options) Active() bool {
	return o.Since != nil || o.Until != nil || o.MinLevel != nil || len(o.Contains) > 0
}

// New composes the filter pipeline over inner: a monotonic time-window
// prefix skip, a hard time-window stop, a minimum-severity filter, and
// a byte-exact substring filter, applied in that order. In Forward
// direction records are skipped while timestamp < since and production
// stops once timestamp >= until; in Reverse the edges swap. Records
// without a parseable timestamp never trigger either edge.
func New(inner entry.Stream, opts Options, direction entry.Direction) entry.Stream {
	return &stream{
		inner:     inner,
		opts:      opts,
		direction: direction,
		skipping:  true,
	}
}

type stream struct {
	inner     entry.Stream
	opts      Options
	direction entry.Direction
	skipping  bool
	stopped   bool
}

func (s *stream) Advance() {
	if s.stopped {
		return
	}

	for {
		s.inner.Advance()
		cur := s.inner.Current()
		if cur == nil {
			return
		}

		if s.skipping {
			if s.skipEdge(cur) {
				continue
			}
			// The prefix skip ends permanently at the first record
			// outside the skip edge.
			s.skipping = false
		}

		if s.stopEdge(cur) {
			// Hard truncation: the remainder of the input is never
			// read.
			s.stopped = true
			return
		}

		if !s.keepLevel(cur) || !s.keepContains(cur) {
			continue
		}
		return
	}
}

func (s *stream) Current() *entry.Entry {
	if s.stopped {
		return nil
	}
	return s.inner.Current()
}

func (s *stream) Err() error { return s.inner.Err() }

// skipEdge reports whether e is still inside the leading region cut
// off by the window.
func (s *stream) skipEdge(e *entry.Entry) bool {
	ts, ok := e.Timestamp()
	if !ok {
		return false
	}
	if s.direction == entry.Forward {
		return s.opts.Since != nil && ts.Before(*s.opts.Since)
	}
	return s.opts.Until != nil && !ts.Before(*s.opts.Until)
}

// stopEdge reports whether e crosses the trailing window bound.
func (s *stream) stopEdge(e *entry.Entry) bool {
	ts, ok := e.Timestamp()
	if !ok {
		return false
	}
	if s.direction == entry.Forward {
		return s.opts.Until != nil && !ts.Before(*s.opts.Until)
	}
	return s.opts.Since != nil && ts.Before(*s.opts.Since)
}

func (s *stream) keepLevel(e *entry.Entry) bool {
	if s.opts.MinLevel == nil {
		return true
	}
	lvl, ok := e.Level()
	if !ok {
		return true
	}
	return lvl >= *s.opts.MinLevel
}

func (s *stream) keepContains(e *entry.Entry) bool {
	if len(s.opts.Contains) == 0 {
		return true
	}
	return bytes.Contains(e.Bytes(), s.opts.Contains)
}
