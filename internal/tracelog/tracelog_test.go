package tracelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTraceLineWritesJSONLEntries(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 60, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	w.TraceLine("send", "PRIVMSG #foo :hi")
	w.TraceLine("recv", "PONG :tmi.twitch.tv")
	w.Close()

	entries := readEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestRotatesBySize(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 60, 0) // rotateMegabytes=0 forces every write to rotate
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	w.TraceLine("send", "one")
	w.TraceLine("send", "two")
	w.Close()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(files) < 2 {
		t.Fatalf("expected rotation to produce multiple files, got %d", len(files))
	}
}

func TestRotatesByAge(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, 60, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	w.TraceLine("send", "one")
	w.mu.Lock()
	w.createdAt = time.Now().Add(-2 * time.Hour)
	w.mu.Unlock()
	w.TraceLine("send", "two")
	w.Close()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(files) < 2 {
		t.Fatalf("expected rotation by age to produce multiple files, got %d", len(files))
	}
}

func readEntries(t *testing.T, dir string) []string {
	t.Helper()
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var lines []string
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		for _, l := range splitNonEmpty(string(data)) {
			lines = append(lines, l)
		}
	}
	return lines
}

func splitNonEmpty(s string) []string {
	var out []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
