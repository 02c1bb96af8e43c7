package log

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	tmlog "github.com/tendermint/tendermint/libs/log"
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 10
	defaultMaxAgeDays = 30
)

var (
	fileWriter io.WriteCloser
	logger     tmlog.Logger
)

func init() {
	logger = NewConsoleLogger()
}

func InitLogger(l tmlog.Logger) {
	logger = l
}

// Logger returns the package-level logger.
func Logger() tmlog.Logger {
	return logger
}

func NewConsoleLogger() tmlog.Logger {
	return tmlog.NewTMLogger(tmlog.NewSyncWriter(os.Stdout))
}

// NewFileLogger writes to filePath, rotating the file by size.
// A previously opened file logger is closed first.
func NewFileLogger(filePath string) tmlog.Logger {
	if fileWriter != nil {
		fileWriter.Close()
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}
	return tmlog.NewTMLogger(tmlog.NewSyncWriter(fileWriter))
}

// WithLevel filters l to the given level ("debug", "info", "error", "none").
func WithLevel(l tmlog.Logger, level string) (tmlog.Logger, error) {
	option, err := tmlog.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return tmlog.NewFilter(l, option), nil
}

// Close releases the file opened by NewFileLogger, if any.
func Close() error {
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

func With(keyvals ...interface{}) tmlog.Logger {
	return logger.With(keyvals...)
}
