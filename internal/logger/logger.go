package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// DEBUG level for detailed debugging information
	DEBUG LogLevel = iota
	// INFO level for general operational information
	INFO
	// WARN level for warning messages
	WARN
	// ERROR level for error messages
	ERROR
	// FATAL level for fatal errors that require immediate attention
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// ParseLevel converts a config value such as "debug" or "WARN" into a LogLevel.
// Unknown values fall back to INFO.
func ParseLevel(s string) LogLevel {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		name = "WARN"
	}
	for level, n := range levelNames {
		if n == name {
			return level
		}
	}
	return INFO
}

// Logger is a levelled logger bound to a component name
type Logger struct {
	level     LogLevel
	logger    *log.Logger
	mu        *sync.Mutex
	component string
	requestID string
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// InitLogger initializes the default logger
func InitLogger(level LogLevel, component string) {
	once.Do(func() {
		defaultLogger = &Logger{
			level:     level,
			logger:    log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds),
			mu:        &sync.Mutex{},
			component: component,
		}
	})
}

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	if defaultLogger == nil {
		InitLogger(INFO, "eng5")
	}
	return defaultLogger
}

// New builds a standalone logger writing to w
func New(w io.Writer, level LogLevel, component string) *Logger {
	return &Logger{
		level:     level,
		logger:    log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		mu:        &sync.Mutex{},
		component: component,
	}
}

// WithComponent creates a new logger with the specified component name
func (l *Logger) WithComponent(component string) *Logger {
	c := l.clone()
	c.component = component
	return c
}

// WithRequestID tags every line with the invocation id
func (l *Logger) WithRequestID(id string) *Logger {
	c := l.clone()
	c.requestID = id
	return c
}

// WithError appends the error to the component tag
func (l *Logger) WithError(err error) *Logger {
	c := l.clone()
	c.component = fmt.Sprintf("%s: %v", l.component, err)
	return c
}

func (l *Logger) clone() *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		level:     l.level,
		logger:    l.logger,
		mu:        l.mu,
		component: l.component,
		requestID: l.requestID,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput redirects the logger and every logger derived from it
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if l.requestID != "" {
		l.logger.Printf("[%s][%s][%s] %s", levelNames[level], l.component, l.requestID, msg)
	} else {
		l.logger.Printf("[%s][%s] %s", levelNames[level], l.component, msg)
	}

	if level == FATAL {
		os.Exit(1)
	}
}

// Debug logs debug level messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs info level messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs warning level messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs error level messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Fatal logs fatal level messages and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}
