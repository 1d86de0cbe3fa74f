package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckFileAccessOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.aup3")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	result := CheckFileAccess("project", path)
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestCheckFileAccessMissing(t *testing.T) {
	result := CheckFileAccess("project", filepath.Join(t.TempDir(), "nope.aup3"))
	if result.Passed {
		t.Fatalf("expected failure for missing file")
	}
}

func TestCheckFileAccessRejectsDirectory(t *testing.T) {
	result := CheckFileAccess("project", t.TempDir())
	if result.Passed {
		t.Fatalf("expected failure when path is a directory")
	}
}

func TestCheckDirectoryAccessOK(t *testing.T) {
	result := CheckDirectoryAccess("dir", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestRunAllCoversFileDirectoryAndBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.aup3")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	results := RunAll(path, "sqlite3")
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
}
