package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile_LoadInitializesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "visits.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	l, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Count != 0 || len(l.Visitors) != 0 {
		t.Errorf("expected empty ledger, got %+v", l)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected initial record on disk: %v", err)
	}
	want := "{\n  \"count\": 0,\n  \"visitors\": []\n}\n"
	if string(data) != want {
		t.Errorf("initial file = %q, want %q", data, want)
	}
}

func TestFile_SaveKeepsKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.json")
	store, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if err := store.Save(context.Background(), &Ledger{Count: 2, Visitors: []string{"1.2.3.4", "5.6.7.8"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(data)
	if strings.Index(s, `"count"`) > strings.Index(s, `"visitors"`) {
		t.Errorf("expected count before visitors, got %s", s)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Count != 2 || loaded.Visitors[0] != "1.2.3.4" || loaded.Visitors[1] != "5.6.7.8" {
		t.Errorf("unexpected ledger after reload: %+v", loaded)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp.*"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestFile_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{count: nope"},
		{name: "count mismatch", content: `{"count": 5, "visitors": ["a"]}`},
		{name: "trailing junk", content: `{"count": 0, "visitors": []} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "visits.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			store, _ := NewFile(path)

			_, err := store.Load(context.Background())
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}

			// The corrupt record is left for the operator to inspect.
			data, _ := os.ReadFile(path)
			if string(data) != tt.content {
				t.Errorf("corrupt file was rewritten to %q", data)
			}
		})
	}
}

func TestFile_NullVisitorsAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.json")
	if err := os.WriteFile(path, []byte(`{"count": 0, "visitors": null}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	store, _ := NewFile(path)

	l, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Visitors == nil {
		t.Error("expected non-nil visitors slice")
	}
}

func TestFile_ResetOverwritesAnything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visits.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	store, _ := NewFile(path)

	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	l, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after reset: %v", err)
	}
	if l.Count != 0 || len(l.Visitors) != 0 {
		t.Errorf("expected empty ledger after reset, got %+v", l)
	}
}

func TestFile_UnreadablePath(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes every read fail.
	path := filepath.Join(dir, "visits.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	store, _ := NewFile(path)

	if _, err := store.Load(context.Background()); err == nil {
		t.Error("expected error reading a directory")
	}
}

func TestNewFile_EmptyPath(t *testing.T) {
	if _, err := NewFile("  "); err == nil {
		t.Error("expected error for empty path")
	}
}
