package confstack

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFromINI(t *testing.T) {
	td := t.TempDir()

	write := func(t *testing.T, name, contents string) string {
		t.Helper()
		p := filepath.Join(td, name)
		if err := os.WriteFile(p, []byte(contents), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
		return p
	}

	sectioned := write(t, "app.ini", "[server]\nhost = localhost\nport = 8080\n\n[client]\nretries = 3\n")
	stray := write(t, "stray.ini", "orphan = value\n\n[server]\nhost = localhost\n")
	malformed := write(t, "bad.ini", "[unclosed\n")
	missing := filepath.Join(td, "missing.ini")

	t.Run("sections become top-level string maps", func(t *testing.T) {
		c := New(nil)
		if err := c.FromINI(sectioned, false); err != nil {
			t.Fatalf("FromINI: %v", err)
		}
		wantServer := map[string]string{"host": "localhost", "port": "8080"}
		if got := c.Get("server"); !reflect.DeepEqual(got, wantServer) {
			t.Fatalf("server: got %v, want %v", got, wantServer)
		}
		wantClient := map[string]string{"retries": "3"}
		if got := c.Get("client"); !reflect.DeepEqual(got, wantClient) {
			t.Fatalf("client: got %v, want %v", got, wantClient)
		}
		if got, want := c.Keys(), []string{"server", "client"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("Keys: got %v, want %v (declaration order)", got, want)
		}
	})

	t.Run("keys above the first section header are skipped", func(t *testing.T) {
		c := New(nil)
		if err := c.FromINI(stray, false); err != nil {
			t.Fatalf("FromINI: %v", err)
		}
		if c.Has("orphan") || c.Has("DEFAULT") {
			t.Fatalf("sectionless keys must not be merged; keys=%v", c.Keys())
		}
		if !c.Has("server") {
			t.Fatalf("named section missing; keys=%v", c.Keys())
		}
	})

	t.Run("section overwrites an existing key of the same name", func(t *testing.T) {
		c := New(map[string]any{"server": "scalar"})
		if err := c.FromINI(sectioned, false); err != nil {
			t.Fatalf("FromINI: %v", err)
		}
		if _, ok := c.Get("server").(map[string]string); !ok {
			t.Fatalf("server: got %T, want map[string]string", c.Get("server"))
		}
	})

	t.Run("malformed input surfaces the parser error", func(t *testing.T) {
		c := New(nil)
		err := c.FromINI(malformed, false)
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
		if errors.Is(err, ErrUnknownFileType) || errors.Is(err, ErrFileNotFound) {
			t.Fatalf("parser error must not wrap package sentinels: %v", err)
		}
	})

	t.Run("missing file wraps the read error", func(t *testing.T) {
		c := New(nil)
		err := c.FromINI(missing, false)
		if err == nil {
			t.Fatalf("expected error, got nil")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected errors.Is(err, os.ErrNotExist), got err=%v", err)
		}
	})

	t.Run("missing file silent is a no-op", func(t *testing.T) {
		c := New(map[string]any{"keep": true})
		if err := c.FromINI(missing, true); err != nil {
			t.Fatalf("FromINI silent: %v", err)
		}
		if c.Len() != 1 || !c.Has("keep") {
			t.Fatalf("store must be untouched; keys=%v", c.Keys())
		}
	})
}
