package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	if err := SafeWriteFile(p, []byte("a,b\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "a,b\n" {
		t.Fatalf("read back: %q %v", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestOutputNames(t *testing.T) {
	got := OutputNames([]string{"a/cube.json", "b/cube.csv", "c/other.json", "d/Cube.xlsx"}, ".md")
	want := []string{"cube.md", "cube__2.md", "other.md", "Cube__3.md"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("name %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	if err != nil || string(b) != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected: %q %v", b, err)
	}
}
