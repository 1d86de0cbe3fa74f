// Package testsupport provides fixtures shared across package tests, the
// way spindle's testsupport package gives every test a ready-made config
// and queue store.
package testsupport

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// ProjectOptions customizes a generated .aup3 fixture.
type ProjectOptions struct {
	ApplicationID int64
	UserVersion   uint32
	WithAutosave  bool
	SampleBlocks  map[int64][]byte
}

// NewProjectFile creates a minimal but schema-correct .aup3 SQLite file
// under a fresh temp directory and returns its path, mirroring the table
// layout AudacityDatabase expects: project/autosave dict+doc blobs and a
// sampleblocks table keyed by blockid.
func NewProjectFile(t testing.TB, opts ProjectOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.aup3")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	statements := []string{
		fmt.Sprintf("PRAGMA application_id = %d", opts.ApplicationID),
		fmt.Sprintf("PRAGMA user_version = %d", opts.UserVersion),
		"CREATE TABLE project (id INTEGER PRIMARY KEY, dict BLOB, doc BLOB)",
		"CREATE TABLE autosave (id INTEGER PRIMARY KEY, dict BLOB, doc BLOB)",
		"CREATE TABLE sampleblocks (blockid INTEGER PRIMARY KEY, sampleformat INTEGER, summin REAL, summax REAL, sumrms REAL, summary256 BLOB, summary64k BLOB, samples BLOB)",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	if opts.WithAutosave {
		if _, err := db.Exec("INSERT INTO autosave (id, dict, doc) VALUES (1, X'', X'')"); err != nil {
			t.Fatalf("seed autosave row: %v", err)
		}
	}

	for blockID, samples := range opts.SampleBlocks {
		if _, err := db.Exec(
			"INSERT INTO sampleblocks (blockid, sampleformat, summin, summax, sumrms, summary256, summary64k, samples) VALUES (?, 0, 0, 0, 0, X'', X'', ?)",
			blockID, samples,
		); err != nil {
			t.Fatalf("seed sample block %d: %v", blockID, err)
		}
	}

	return path
}
