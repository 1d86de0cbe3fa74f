package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/fileutil"
)

// ReopenWritable copies the project to its ".recovered.aup3" sibling path
// and reopens the handle against that copy read-write, leaving the
// original file untouched. A no-op once already writable.
func (a *Adapter) ReopenWritable(ctx context.Context) error {
	if !a.readOnly {
		return nil
	}

	if err := removeOldArtifacts(a.writablePath); err != nil {
		return err
	}

	if err := fileutil.CopyFileVerified(a.projectPath, a.writablePath); err != nil {
		return aup3err.Wrap(aup3err.IoFailed, "copy project to writable path", err)
	}

	return a.reopenAt(ctx, a.writablePath, false)
}

func (a *Adapter) reopenAt(ctx context.Context, path string, readOnly bool) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return aup3err.Wrap(aup3err.DbOther, "reopen database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return aup3err.Wrap(aup3err.DbOther, "ping reopened database", err)
	}

	if a.db != nil {
		_ = a.db.Close()
	}

	a.db = db
	a.currentPath = path
	a.readOnly = readOnly
	return nil
}

// removeOldArtifacts deletes a previous writable copy and its WAL/SHM
// sidecar files, mirroring AudacityDatabase::removeOldFiles.
func removeOldArtifacts(path string) error {
	for _, p := range []string{path, sidecar(path, "-wal"), sidecar(path, "-shm")} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return aup3err.Wrap(aup3err.IoFailed, fmt.Sprintf("remove %s", p), err)
		}
	}
	return nil
}

func sidecar(path, suffix string) string {
	if strings.HasSuffix(path, ".aup3") {
		return strings.TrimSuffix(path, ".aup3") + ".aup3" + suffix
	}
	return path + suffix
}
