package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWatcherNeedsRoot(t *testing.T) {
	if _, err := NewWatcher(New("")); err == nil {
		t.Fatal("watcher without a root directory was created")
	}
}

func TestWatcherPoll(t *testing.T) {
	observe(t)
	root := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("w.vert", "void main() {}")
	write("w.frag", "void main() {}")

	lib := New(root)
	p := lib.LoadShaderProgram("w.vert", "w.frag")

	w, err := NewWatcher(lib)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if n := w.Poll(); n != 0 {
		t.Errorf("poll without changes reloaded %d", n)
	}

	write("w.frag", "void main() { discard; }")
	w.Mark("w.frag")
	if n := w.Poll(); n != 1 {
		t.Errorf("poll reloaded %d, want 1", n)
	}
	if p.UpdateCount() != 1 {
		t.Errorf("program update count = %d, want 1", p.UpdateCount())
	}

	// A late event for the same write finds nothing new.
	w.Mark("w.frag")
	if n := w.Poll(); n != 0 {
		t.Errorf("second poll reloaded %d", n)
	}
}
