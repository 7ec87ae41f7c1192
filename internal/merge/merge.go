package merge

import (
	"github.com/loglens/loglens/internal/entry"
)

// Mux merges N individually ordered record streams into one globally
// time-ordered stream. It implements entry.Stream itself, so a mux
// can feed the filter pipeline or another consumer directly.
type Mux struct {
	sources   []entry.Stream
	direction entry.Direction
	curr      int // index into sources, -1 when none selected
	primed    bool
	err       error
}

// New builds a mux over sources, which must each already be ordered
// consistent with direction. A single-source mux reduces to that
// source's own sequence unchanged.
func New(sources []entry.Stream, direction entry.Direction) *Mux {
	return &Mux{
		sources:   sources,
		direction: direction,
		curr:      -1,
	}
}

// Advance moves the merge forward: the previously selected source is
// advanced (all sources are advanced once on the first call), sources
// with no current record are dropped, and the live source with the
// extremal timestamp for the direction becomes current. A source that
// runs dry is excluded from comparison, never a fault.
func (m *Mux) Advance() {
	if m.err != nil {
		return
	}

	if !m.primed {
		m.primed = true
		for _, src := range m.sources {
			src.Advance()
			if err := src.Err(); err != nil {
				m.fail(err)
				return
			}
		}
		m.retainLive()
	} else if m.curr >= 0 {
		src := m.sources[m.curr]
		src.Advance()
		if err := src.Err(); err != nil {
			m.fail(err)
			return
		}
		if src.Current() == nil {
			m.sources = append(m.sources[:m.curr], m.sources[m.curr+1:]...)
		}
		m.curr = -1
	}

	m.curr = m.pick()
}

// Current returns the selected source's record, or nil once every
// source is exhausted.
func (m *Mux) Current() *entry.Entry {
	if m.curr < 0 || m.curr >= len(m.sources) {
		return nil
	}
	return m.sources[m.curr].Current()
}

// Err returns the first failure from any source, or nil.
func (m *Mux) Err() error { return m.err }

func (m *Mux) fail(err error) {
	m.err = err
	m.sources = nil
	m.curr = -1
}

func (m *Mux) retainLive() {
	live := m.sources[:0]
	for _, src := range m.sources {
		if src.Current() != nil {
			live = append(live, src)
		}
	}
	m.sources = live
}

// pick selects the live source whose current record is extremal for
// the direction. Ties between equal timestamps are broken
// arbitrarily.
func (m *Mux) pick() int {
	best := -1
	for i, src := range m.sources {
		if best < 0 {
			best = i
			continue
		}
		c := compare(src.Current(), m.sources[best].Current())
		if (m.direction == entry.Forward && c < 0) ||
			(m.direction == entry.Reverse && c > 0) {
			best = i
		}
	}
	return best
}

// compare orders entries by timestamp. Records without a parseable
// timestamp sort below all timestamped records, in both directions.
func compare(a, b *entry.Entry) int {
	ta, aok := a.Timestamp()
	tb, bok := b.Timestamp()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return ta.Compare(tb)
}
