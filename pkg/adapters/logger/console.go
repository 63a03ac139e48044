// Package logger provides ports.Logger implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/user/posterkit/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ConsoleLogger writes translated messages to the terminal and, when
// configured, to a rotating log file.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	color     bool
	stdout    io.Writer
	stderr    io.Writer
	file      io.Writer
	mu        *sync.Mutex
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithFile mirrors every message, uncoloured and timestamped, into a log
// file rotated at maxSizeMB.
func WithFile(path string, maxSizeMB int) Option {
	return func(l *ConsoleLogger) {
		if path == "" {
			return
		}
		l.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
	}
}

// WithWriters redirects console output.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(l *ConsoleLogger) {
		l.stdout = stdout
		l.stderr = stderr
		l.color = false
	}
}

// NewConsole creates a console logger at level. Colour is enabled when
// stdout is a terminal.
func NewConsole(level ports.LogLevel, opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		level:  level,
		color:  isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		stdout: os.Stdout,
		stderr: os.Stderr,
		mu:     &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger sharing outputs, prefixed with component.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	c := *l
	c.component = component
	return &c
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	translated := l10n.F(msg, args...)
	plain := translated
	if l.component != "" {
		plain = fmt.Sprintf("[%s] %s", l.component, translated)
	}

	output := plain
	if l.color {
		if l.component != "" {
			output = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
		}
		switch level {
		case ports.LevelDebug:
			output = colorGray + output + colorReset
		case ports.LevelWarn:
			output = colorYellow + output + colorReset
		case ports.LevelError:
			output = colorRed + output + colorReset
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if level >= ports.LevelWarn {
		fmt.Fprintln(l.stderr, output)
	} else {
		fmt.Fprintln(l.stdout, output)
	}
	if l.file != nil {
		fmt.Fprintf(l.file, "%s %-5s %s\n", time.Now().Format(time.RFC3339), level, plain)
	}
}

var _ ports.Logger = (*ConsoleLogger)(nil)
