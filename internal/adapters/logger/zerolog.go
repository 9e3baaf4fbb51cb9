// Package logger implements the logging port on zerolog, writing to a file
// under the data directory so CLI output stays clean.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/opticode-ai/opticode/internal/util"
)

// FileLogger writes structured log lines to opticode.log in the XDG data
// directory.
type FileLogger struct {
	log zerolog.Logger
}

// NewFileLogger opens (or creates) the log file. When the data directory is
// unavailable it degrades to a disabled logger rather than failing the
// command.
func NewFileLogger() *FileLogger {
	dataDir, err := util.DataDir()
	if err != nil {
		return &FileLogger{log: zerolog.Nop()}
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return &FileLogger{log: zerolog.Nop()}
	}

	f, err := os.OpenFile(filepath.Join(dataDir, "opticode.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &FileLogger{log: zerolog.Nop()}
	}

	return &FileLogger{
		log: zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel),
	}
}

// NewWriterLogger logs to an arbitrary writer; used in tests.
func NewWriterLogger(w io.Writer) *FileLogger {
	return &FileLogger{log: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *FileLogger) Debug(message string) {
	l.log.Debug().Msg(message)
}

func (l *FileLogger) Error(message string) {
	l.log.Error().Msg(message)
}
