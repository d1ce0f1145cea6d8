package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SetPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.Active() {
		t.Fatal("Active() = true for fresh store, want false")
	}

	if err := s.Set("tok-xyz"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if s.Token() != "tok-xyz" {
		t.Fatalf("Token() = %q, want tok-xyz", s.Token())
	}

	// A second store opened on the same path sees the persisted token.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Open (reload) returned error: %v", err)
	}
	if s2.Token() != "tok-xyz" {
		t.Fatalf("reloaded Token() = %q, want tok-xyz", s2.Token())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode = %o, want 600", perm)
	}
}

func TestStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Set("tok"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if s.Active() {
		t.Fatal("Active() = true after Clear, want false")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file still present after Clear: %v", err)
	}

	// Clearing an already-empty store is a no-op.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestOpen_CorruptFileDegradesToEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("access_token = [broken"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := Open(path)
	if err == nil {
		t.Fatal("Open returned nil error for corrupt file, want parse error")
	}
	if s == nil {
		t.Fatal("Open returned nil store, want usable empty store")
	}
	if s.Active() {
		t.Fatal("Active() = true for corrupt file, want false")
	}
	if setErr := s.Set("fresh"); setErr != nil {
		t.Fatalf("Set after corrupt open returned error: %v", setErr)
	}
}
