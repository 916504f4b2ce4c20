// Package logger configures the global logrus logger for phonekit.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation contains log file rotation settings.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// logFile holds the rotating file writer for cleanup.
var (
	logFile   *lumberjack.Logger
	logFileMu sync.Mutex
)

// Setup sets the level and outputs of the global logrus logger.
// Logs go to stderr, and also to filePath when it is not empty.
func Setup(level, filePath string, rotation Rotation) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logFileMu.Lock()
	defer logFileMu.Unlock()

	// Close previous log file if open
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if filePath == "" {
		logrus.SetOutput(os.Stderr)
		return nil
	}

	logFile = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotation.MaxSizeMB,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAgeDays,
		Compress:   rotation.Compress,
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, logFile))

	logrus.WithFields(logrus.Fields{
		"level":       lvl.String(),
		"log_file":    filePath,
		"max_size":    fmt.Sprintf("%dMB", rotation.MaxSizeMB),
		"max_backups": rotation.MaxBackups,
		"max_age":     fmt.Sprintf("%d days", rotation.MaxAgeDays),
		"compress":    rotation.Compress,
	}).Debug("Logger initialized with file output")

	return nil
}

// Close closes the log file and should be called during application shutdown.
func Close() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logrus.SetOutput(os.Stderr)
		return err
	}
	return nil
}

// ParseLevel converts a level name to a logrus.Level.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "INFO", "":
		return logrus.InfoLevel, nil
	case "WARNING", "WARN":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}
