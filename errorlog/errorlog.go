// Package errorlog is the process-wide append-only diagnostic log. Every
// entry is one line of the form "error: <message>".
package errorlog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	logger *zap.Logger
	file   *os.File
}

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}
	l := New(f)
	l.file = f
	return l, nil
}

// New writes entries to ws. Writes are serialised so concurrent callers never
// interleave within a line.
func New(ws zapcore.WriteSyncer) *Log {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(encoder, zapcore.Lock(ws), zapcore.ErrorLevel)
	return &Log{logger: zap.New(core)}
}

// Write appends one entry.
func (l *Log) Write(message string) {
	l.logger.Error("error: " + message)
}

func (l *Log) Close() error {
	_ = l.logger.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
