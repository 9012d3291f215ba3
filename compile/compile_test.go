package compile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golangee/geo/assemble"
)

func TestCompileSucceedsOnMinimalSource(t *testing.T) {
	result, err := Compile([]byte("impl () { calc start() { } }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Types.Len() != 3 {
		t.Fatalf("want 3 built-in class ids, got %d", result.Types.Len())
	}
}

func TestCompilePropagatesMissingStartAsAssembleError(t *testing.T) {
	_, err := Compile([]byte("Goose"))
	aerr, ok := err.(*assemble.Error)
	if !ok || aerr.Kind != assemble.NoStartMethodFound {
		t.Fatalf("want NoStartMethodFound, got %v", err)
	}
}

func TestFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.geo")
	if err := os.WriteFile(path, []byte("impl () { calc start() { } }"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := File(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFileMissingReturnsOSError(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "missing.geo")); err == nil {
		t.Fatal("want an error for a missing file")
	}
}
