package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ezan_player.log")
	var content string
	for i := 1; i <= 30; i++ {
		content += fmt.Sprintf("line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lines, err := Tail(path, 20)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(lines), 20; got != want {
		t.Fatalf("len(lines) = %d, want %d", got, want)
	}
	if got, want := lines[0], "line 11"; got != want {
		t.Errorf("lines[0] = %q, want %q", got, want)
	}
	if got, want := lines[19], "line 30"; got != want {
		t.Errorf("lines[19] = %q, want %q", got, want)
	}

	t.Run("ShortFile", func(t *testing.T) {
		short := filepath.Join(t.TempDir(), "short.log")
		if err := os.WriteFile(short, []byte("only\n"), 0644); err != nil {
			t.Fatal(err)
		}
		lines, err := Tail(short, 20)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := len(lines), 1; got != want {
			t.Errorf("len(lines) = %d, want %d", got, want)
		}
	})

	t.Run("EmptyFile", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty.log")
		if err := os.WriteFile(empty, nil, 0644); err != nil {
			t.Fatal(err)
		}
		lines, err := Tail(empty, 20)
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 0 {
			t.Errorf("lines = %v, want none", lines)
		}
	})

	t.Run("NoSuchFile", func(t *testing.T) {
		if _, err := Tail(filepath.Join(t.TempDir(), "missing.log"), 20); err == nil {
			t.Error("Tail of missing file succeeded, want error")
		}
	})
}
