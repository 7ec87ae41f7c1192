package entry

// Direction is the global traversal order.
type Direction int

const (
	// Forward reads oldest to newest.
	Forward Direction = iota
	// Reverse reads newest to oldest.
	Reverse
)

// Stream is a pull-based sequence of log entries. The consumer drives
// it explicitly: Advance moves to the next entry (or marks the stream
// exhausted), Current returns the live entry.
//
// The entry returned by Current is reused storage owned by the
// producer and is only valid until the next Advance.
type Stream interface {
	// Advance moves to the next entry, or marks the stream exhausted.
	Advance()

	// Current returns the live entry, or nil if Advance has not been
	// called yet or the stream is exhausted.
	Current() *Entry

	// Err returns the first I/O failure encountered, if any. Plain
	// exhaustion is not an error. Once Err is non-nil the stream stays
	// exhausted.
	Err() error
}
