package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesFileAndMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "game.txt")
	l := NewAt(path)

	l.Log("launch")
	l.Logf("killed %s for %d points", "pig", 3)

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[") || !strings.HasSuffix(lines[0], "] launch") {
		t.Errorf("Expected stamped line, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "killed pig for 3 points") {
		t.Errorf("Expected formatted line, got %q", lines[1])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file on disk: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("Expected 2 lines on disk, got %d", got)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewAt("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "mutated"
	if l.Lines()[0] == "mutated" {
		t.Error("Expected Lines to return a copy")
	}
}
