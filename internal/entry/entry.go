package entry

import (
	"bytes"
	"time"
)

// TimestampLayout is the fixed-width on-disk timestamp format.
const TimestampLayout = "2006-01-02 15:04:05.000"

// timestampLen is the byte width of TimestampLayout on disk.
const timestampLen = len(TimestampLayout)

// Entry is one logical log record framed from raw bytes.
//
// An Entry is reused storage: framers overwrite the same instance on
// every advance. Severity and timestamp are extracted lazily and
// memoized until the contents are next mutated. Callers that need to
// retain an entry past the next advance must Clone it.
type Entry struct {
	raw    []byte
	source int

	levelDone bool
	level     Level
	levelOK   bool

	tsDone bool
	ts     time.Time
	tsOK   bool
}

// New returns an empty entry attributed to source.
func New(source int) *Entry {
	return &Entry{source: source}
}

// Bytes returns the raw record contents, including any trailing
// terminator padding. The slice aliases the entry's storage and is
// only valid until the next mutation.
func (e *Entry) Bytes() []byte { return e.raw }

// Source returns the stable input index this entry belongs to.
func (e *Entry) Source() int { return e.source }

// Empty reports whether the entry currently holds no contents.
func (e *Entry) Empty() bool { return len(e.raw) == 0 }

// Reset clears the contents for reuse and invalidates the memoized
// severity and timestamp.
func (e *Entry) Reset() {
	e.raw = e.raw[:0]
	e.invalidate()
}

// Append adds p to the end of the contents.
func (e *Entry) Append(p []byte) {
	e.raw = append(e.raw, p...)
	e.invalidate()
}

// Prepend rebuilds the contents as p + sep + existing contents.
func (e *Entry) Prepend(p, sep []byte) {
	grown := make([]byte, 0, len(p)+len(sep)+len(e.raw))
	grown = append(grown, p...)
	grown = append(grown, sep...)
	grown = append(grown, e.raw...)
	e.raw = grown
	e.invalidate()
}

// SetBytes replaces the contents with a copy of p.
func (e *Entry) SetBytes(p []byte) {
	e.raw = append(e.raw[:0], p...)
	e.invalidate()
}

// Clone returns an independent copy that survives framer reuse.
func (e *Entry) Clone() *Entry {
	c := *e
	c.raw = append([]byte(nil), e.raw...)
	return &c
}

func (e *Entry) invalidate() {
	e.levelDone = false
	e.tsDone = false
}

// Level extracts the record severity: the byte following the first
// '-' selects the level. Records without a recognizable header have
// no level.
func (e *Entry) Level() (Level, bool) {
	if !e.levelDone {
		e.levelDone = true
		e.level, e.levelOK = extractLevel(e.raw)
	}
	return e.level, e.levelOK
}

// Timestamp extracts the record timestamp: 23 bytes starting two
// bytes after the first '>'. Records without a parseable timestamp
// have none.
func (e *Entry) Timestamp() (time.Time, bool) {
	if !e.tsDone {
		e.tsDone = true
		e.ts, e.tsOK = extractTimestamp(e.raw)
	}
	return e.ts, e.tsOK
}

func extractLevel(raw []byte) (Level, bool) {
	pos := bytes.IndexByte(raw, '-')
	if pos < 0 || pos+1 >= len(raw) {
		return 0, false
	}
	switch raw[pos+1] {
	case 'd':
		return LevelDebug, true
	case 'i':
		return LevelInfo, true
	case 'w':
		return LevelWarning, true
	case 'c':
		return LevelCritical, true
	case 'f':
		return LevelFatal, true
	}
	return 0, false
}

func extractTimestamp(raw []byte) (time.Time, bool) {
	pos := bytes.IndexByte(raw, '>')
	if pos < 0 {
		return time.Time{}, false
	}
	start := pos + 2
	if start+timestampLen > len(raw) {
		return time.Time{}, false
	}
	ts, err := time.Parse(TimestampLayout, string(raw[start:start+timestampLen]))
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
