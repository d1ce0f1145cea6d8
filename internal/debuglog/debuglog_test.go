package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dripadvisor.log")

	logger, closeFn, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	logger.Debug().Str("event", "open").Msg("hello")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, `"event":"open"`) || !strings.Contains(line, `"message":"hello"`) {
		t.Fatalf("log line = %q, want event and message fields", line)
	}
}

func TestOpen_AppendsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dripadvisor.log")

	for _, msg := range []string{"first", "second"} {
		logger, closeFn, err := Open(path)
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		logger.Debug().Msg(msg)
		closeFn()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("log has %d lines, want 2", got)
	}
}
