// Package database opens and manipulates .aup3 project files, grounded on
// _examples/original_source/src/AudacityDatabase.h/.cpp. It uses
// modernc.org/sqlite the way
// _examples/five82-spindle/internal/queue/store_core.go does: sql.Open
// with the pure-Go driver and a busy-retry wrapper around writes.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"aup3tool/internal/aup3err"
)

// applicationID is the SQLite application_id pragma value Audacity stamps
// on every project file.
const applicationID = 1096107097

// maxSupportedVersion is 3.1.3.0 packed the way Audacity packs
// user_version: major<<24 | minor<<16 | patch<<8 | build<<0.
const maxSupportedVersion = (3 << 24) | (1 << 16) | (3 << 8)

const (
	sqliteBusyCode    = 5
	sqliteCorruptCode = 11
	sqliteNotADBCode  = 26
	busyRetryAttempts = 5
	busyRetryInitial  = 10 * time.Millisecond
	busyRetryMax      = 200 * time.Millisecond
)

// Adapter wraps an open .aup3 database and tracks the paths a recovery or
// write operation might redirect it to.
type Adapter struct {
	db *sql.DB

	projectPath  string
	currentPath  string
	writablePath string
	dataPath     string

	projectVersion uint32
	readOnly       bool
}

// Open opens the project file at path read-only and validates its
// application_id and user_version pragmas.
func Open(path string) (*Adapter, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, aup3err.Wrap(aup3err.DbOther, "open database", err)
	}

	a := &Adapter{
		db:           db,
		projectPath:  path,
		currentPath:  path,
		writablePath: recoveredPath(path),
		dataPath:     dataPath(path),
		readOnly:     true,
	}

	if err := a.checkHeader(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return a, nil
}

func (a *Adapter) checkHeader() error {
	var appID int64
	if err := a.db.QueryRow("PRAGMA application_id").Scan(&appID); err != nil {
		if isSQLiteCorrupt(err) {
			return aup3err.Wrap(aup3err.DbCorrupt, "read application_id", err)
		}
		return aup3err.Wrap(aup3err.DbOther, "read application_id", err)
	}
	if appID != applicationID {
		slog.Default().Warn("unexpected application_id, continuing anyway", "application_id", appID, "expected", applicationID)
	}

	var version int64
	if err := a.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		if isSQLiteCorrupt(err) {
			return aup3err.Wrap(aup3err.DbCorrupt, "read user_version", err)
		}
		return aup3err.Wrap(aup3err.DbOther, "read user_version", err)
	}
	a.projectVersion = uint32(version)

	if version > maxSupportedVersion {
		return aup3err.New(aup3err.UnsupportedVersion, fmt.Sprintf("project requires a newer Audacity than this tool supports (user_version %d)", version))
	}

	return nil
}

// Close closes the underlying database handle.
func (a *Adapter) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// ProjectVersion returns the packed user_version read at open time.
func (a *Adapter) ProjectVersion() uint32 { return a.projectVersion }

// ProjectPath returns the path of the original project file.
func (a *Adapter) ProjectPath() string { return a.projectPath }

// CurrentPath returns the path currently backing the open handle: the
// original project path until a write operation reopens it writable.
func (a *Adapter) CurrentPath() string { return a.currentPath }

// DataPath returns the "<name>_data" directory used for extracted
// artifacts (clips, sample blocks, tracks).
func (a *Adapter) DataPath() string { return a.dataPath }

func recoveredPath(path string) string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, base+".recovered.aup3")
}

func dataPath(path string) string {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, base+"_data")
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// isSQLiteCorrupt reports whether err indicates the database file itself
// is corrupt (as opposed to e.g. a permissions or locking failure), the
// condition that makes DbCorrupt the right classification for checkHeader.
func isSQLiteCorrupt(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		switch coder.Code() {
		case sqliteCorruptCode, sqliteNotADBCode:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitial
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMax {
			delay = next
		}
	}
	return lastErr
}

func (a *Adapter) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := a.db.ExecContext(ctx, query, args...)
		return err
	})
}
