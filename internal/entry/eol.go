package entry

import "runtime"

// DefaultEOL returns the platform line terminator. The terminator is
// threaded through every component as an explicit value so both
// conventions stay testable on any platform.
func DefaultEOL() []byte {
	if runtime.GOOS == "windows" {
		return []byte("\r\n")
	}
	return []byte("\n")
}
