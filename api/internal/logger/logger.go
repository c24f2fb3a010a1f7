// Package logger adapts github.com/baditaflorin/l to the small key/value
// logging interface used across the service.
package logger

import (
	"fmt"
	"os"

	"github.com/baditaflorin/l"
)

// Logger is the structured logger every component receives.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// Options controls where and how log lines are written.
type Options struct {
	JSON bool
	File string
}

type stdLogger struct {
	logger l.Logger
}

// New builds a Logger on top of l's standard factory. With a File set, l
// owns the file and rotates it; l only honours FilePath for synchronous
// writers, so async buffering is kept for stdout alone.
func New(opt Options) (Logger, error) {
	cfg := l.Config{
		Output:      os.Stdout,
		JsonFormat:  opt.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
	}
	if opt.File != "" {
		cfg.FilePath = opt.File
		cfg.AsyncWrite = false
	}

	lg, err := l.NewStandardFactory().CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &stdLogger{logger: lg}, nil
}

func (s *stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *stdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *stdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *stdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

func (s *stdLogger) Close() error {
	return s.logger.Close()
}

type nop struct{}

// Nop discards everything. Used by tests and by the probe CLI.
func Nop() Logger { return nop{} }

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}
func (nop) Close() error                 { return nil }
