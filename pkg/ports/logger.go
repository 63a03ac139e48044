package ports

import "fmt"

// LogLevel is the severity of a log message.
type LogLevel int

const (
	// LevelDebug is used by stages and adapters for internal processing details.
	LevelDebug LogLevel = iota
	// LevelInfo is used by the orchestrator for user-visible progress.
	LevelInfo
	// LevelWarn reports a problem the user can recover from by retrying an action.
	LevelWarn
	// LevelError reports a failed user action.
	LevelError
	// LevelQuiet suppresses all output.
	LevelQuiet
)

var levelNames = map[LogLevel]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

// String returns the lowercase name of the level.
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLogLevel parses a level name. Unknown names are rejected so that
// a typo in the config file does not silently change verbosity.
func ParseLogLevel(s string) (LogLevel, error) {
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger abstracts logging. Message strings are lexicon keys; adapters may
// translate them before formatting with args.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
