package entry

import "time"

// cliTimeLayouts are accepted for user-supplied time bounds, most
// specific first.
var cliTimeLayouts = []string{
	TimestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a user-supplied time bound, accepting the on-disk
// timestamp format and progressively coarser prefixes of it down to a
// bare date.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range cliTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
