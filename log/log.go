// Package log provides structured logging with filesystem-based persistence.
//
// Every emission is a no-op unless the logs.write setting is enabled.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is a set of structured key-value pairs attached to a log entry.
type Fields = logrus.Fields

// enabled indicates the persistent logging state for the active application instance.
var enabled bool

// discard receives entries built while logging is disabled.
var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: &logrus.TextFormatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

// Setup initializes file handles, formatting and severity levels from the global configuration.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// WithFields returns an entry carrying the given fields. When logging is
// disabled the entry writes nowhere.
func WithFields(fields Fields) *logrus.Entry {
	if !enabled {
		return logrus.NewEntry(discard).WithFields(fields)
	}
	return logrus.WithFields(fields)
}

func emit(level logrus.Level, args ...any) {
	if enabled {
		logrus.StandardLogger().Log(level, args...)
	}
}

func emitf(level logrus.Level, format string, args ...any) {
	if enabled {
		logrus.StandardLogger().Logf(level, format, args...)
	}
}

func Error(args ...any)                 { emit(logrus.ErrorLevel, args...) }
func Errorf(format string, args ...any) { emitf(logrus.ErrorLevel, format, args...) }
func Warn(args ...any)                  { emit(logrus.WarnLevel, args...) }
func Warnf(format string, args ...any)  { emitf(logrus.WarnLevel, format, args...) }
func Info(args ...any)                  { emit(logrus.InfoLevel, args...) }
func Infof(format string, args ...any)  { emitf(logrus.InfoLevel, format, args...) }
func Debug(args ...any)                 { emit(logrus.DebugLevel, args...) }
func Debugf(format string, args ...any) { emitf(logrus.DebugLevel, format, args...) }
func Trace(args ...any)                 { emit(logrus.TraceLevel, args...) }
func Tracef(format string, args ...any) { emitf(logrus.TraceLevel, format, args...) }
