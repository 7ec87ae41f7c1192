package entry

import "strings"

// Level is a record severity. Levels are totally ordered from Debug
// up to Fatal.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelCritical
	LevelFatal
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warning":
		return LevelWarning, true
	case "critical":
		return LevelCritical, true
	case "fatal":
		return LevelFatal, true
	}
	return 0, false
}
