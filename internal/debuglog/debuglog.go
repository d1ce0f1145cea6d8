// Package debuglog sets up the file-backed debug logger. The TUI owns the
// terminal, so diagnostic output goes to a log file instead of stderr.
package debuglog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open creates (or appends to) the debug log at path and returns a logger
// writing to it plus a close function. The caller should fall back to a Nop
// logger when Open fails; a broken log file must never stop the app.
func Open(path string) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open debug log: %w", err)
	}
	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger, func() { _ = f.Close() }, nil
}
