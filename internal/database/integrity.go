package database

import (
	"context"

	"aup3tool/internal/aup3err"
)

// CheckIntegrity runs PRAGMA integrity_check and reports whether the
// database passed, along with any diagnostic lines SQLite returned.
func (a *Adapter) CheckIntegrity(ctx context.Context) (ok bool, messages []string, err error) {
	rows, err := a.db.QueryContext(ctx, "PRAGMA integrity_check(10240)")
	if err != nil {
		return false, nil, aup3err.Wrap(aup3err.DbOther, "run integrity_check", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return false, nil, aup3err.Wrap(aup3err.DbOther, "scan integrity_check row", err)
		}
		if msg == "ok" {
			return true, messages, nil
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return false, messages, aup3err.Wrap(aup3err.DbOther, "iterate integrity_check rows", err)
	}

	return false, messages, nil
}
