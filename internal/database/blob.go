package database

import (
	"context"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
)

// ReadProjectBlob reads the dict and doc columns for the project or
// autosave row and concatenates them into a single buffer, the layout
// Decode expects. Grounded on ReadProjectBlob in
// _examples/original_source/src/ProjectBlobReader.cpp, simplified from
// that file's chunked sqlite3_blob_read loop: database/sql already
// buffers a BLOB column scan in one round trip, so there is no streaming
// benefit left to reproduce in Go.
func (a *Adapter) ReadProjectBlob(ctx context.Context, table string) (*bytebuffer.Buffer, error) {
	var dict, doc []byte
	query := "SELECT dict, doc FROM " + table + " WHERE id = 1"
	if err := a.db.QueryRowContext(ctx, query).Scan(&dict, &doc); err != nil {
		return nil, aup3err.Wrap(aup3err.DbOther, "read project blob from "+table, err)
	}

	buf := bytebuffer.New()
	buf.Append(dict)
	buf.Append(doc)
	return buf, nil
}

// WriteProjectBlob writes dict and doc back to the project or autosave
// row, mirroring AudacityProject::saveProject's
// "INSERT OR REPLACE INTO <table>(id, dict, doc) VALUES (1, ?1, ?2)".
func (a *Adapter) WriteProjectBlob(ctx context.Context, table string, dict, doc *bytebuffer.Buffer) error {
	query := "INSERT OR REPLACE INTO " + table + "(id, dict, doc) VALUES (1, ?, ?)"
	if err := a.execWithRetry(ctx, query, dict.Linearize(), doc.Linearize()); err != nil {
		return aup3err.Wrap(aup3err.DbOther, "write project blob to "+table, err)
	}
	return nil
}

// HasAutosave reports whether the autosave table holds a row, the
// condition under which a project should be read from (and saved back to)
// autosave instead of project.
func (a *Adapter) HasAutosave(ctx context.Context) (bool, error) {
	var count int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM autosave").Scan(&count); err != nil {
		return false, aup3err.Wrap(aup3err.DbOther, "check autosave", err)
	}
	return count > 0, nil
}

// DropAutosave removes the autosave row, reopening the database writable
// first if needed.
func (a *Adapter) DropAutosave(ctx context.Context) error {
	has, err := a.HasAutosave(ctx)
	if err != nil {
		return err
	}
	if !has {
		return nil
	}
	if err := a.ReopenWritable(ctx); err != nil {
		return err
	}
	if err := a.execWithRetry(ctx, "DELETE FROM autosave WHERE id = 1"); err != nil {
		return aup3err.Wrap(aup3err.DbOther, "drop autosave", err)
	}
	return nil
}
