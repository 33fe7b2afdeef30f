package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel is a logging level name understood by logrus.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat selects the output encoding.
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// Config describes logger output and rotation.
type Config struct {
	Level      LogLevel  `yaml:"level" json:"level"`
	Format     LogFormat `yaml:"format" json:"format"`
	Output     string    `yaml:"output" json:"output"` // stdout, stderr, file
	Filename   string    `yaml:"filename" json:"filename"`
	MaxSize    int       `yaml:"max_size" json:"max_size"` // MB per file
	MaxAge     int       `yaml:"max_age" json:"max_age"`   // days
	MaxBackups int       `yaml:"max_backups" json:"max_backups"`
	Compress   bool      `yaml:"compress" json:"compress"`
}

// DefaultConfig is used when no logging section is configured.
var DefaultConfig = Config{
	Level:      LevelInfo,
	Format:     FormatText,
	Output:     "stdout",
	MaxSize:    50,
	MaxAge:     14,
	MaxBackups: 5,
	Compress:   true,
}

// Logger is the structured logging interface used across the toolkit.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// StructuredLogger wraps a logrus entry.
type StructuredLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// New creates a logger from config.
func New(config Config) Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logger.SetOutput(resolveOutput(config))

	return &StructuredLogger{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

func resolveOutput(config Config) io.Writer {
	switch config.Output {
	case "stderr":
		return os.Stderr
	case "file":
		filename := config.Filename
		if filename == "" {
			filename = "logs/csekit.log"
		}
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
			return os.Stdout
		}
		return &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    config.MaxSize,
			MaxAge:     config.MaxAge,
			MaxBackups: config.MaxBackups,
			Compress:   config.Compress,
		}
	default:
		return os.Stdout
	}
}

func (l *StructuredLogger) Debug(msg string, fields ...interface{}) {
	l.withPairs(fields...).Debug(msg)
}

func (l *StructuredLogger) Info(msg string, fields ...interface{}) {
	l.withPairs(fields...).Info(msg)
}

func (l *StructuredLogger) Warn(msg string, fields ...interface{}) {
	l.withPairs(fields...).Warn(msg)
}

func (l *StructuredLogger) Error(msg string, fields ...interface{}) {
	l.withPairs(fields...).Error(msg)
}

func (l *StructuredLogger) Fatal(msg string, fields ...interface{}) {
	l.withPairs(fields...).Fatal(msg)
}

// WithField returns a logger with an extra field attached.
func (l *StructuredLogger) WithField(key string, value interface{}) Logger {
	return &StructuredLogger{logger: l.logger, entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger with extra fields attached.
func (l *StructuredLogger) WithFields(fields map[string]interface{}) Logger {
	return &StructuredLogger{logger: l.logger, entry: l.entry.WithFields(fields)}
}

// withPairs interprets variadic arguments as alternating key/value pairs.
func (l *StructuredLogger) withPairs(fields ...interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	data := make(logrus.Fields, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("field%d", i/2)
		}
		data[key] = fields[i+1]
	}
	return l.entry.WithFields(data)
}
