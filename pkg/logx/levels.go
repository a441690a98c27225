package logx

import "strings"

// Level represents logging level
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	// LevelFatal logs and exits the process
	LevelFatal
	// LevelOff disables all logging
	LevelOff
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
	LevelFatal: "FATAL",
	LevelOff:   "OFF",
}

// String returns the string representation of the log level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a string into a Level, falling back to INFO
func ParseLevel(level string) Level {
	upper := strings.ToUpper(level)
	if upper == "WARNING" {
		return LevelWarn
	}
	for l, name := range levelNames {
		if name == upper {
			return l
		}
	}
	return LevelInfo
}

// Enabled checks if target is at or above the configured level
func (l Level) Enabled(target Level) bool {
	return l <= target
}
