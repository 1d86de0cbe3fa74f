package database

import (
	"context"

	"aup3tool/internal/recovery"
)

// RecoverFromCorruption drives the external sqlite3 .recover helper
// against the project file and reopens this Adapter against the resulting
// recovered database, mirroring AudacityDatabase::recoverDatabase.
func (a *Adapter) RecoverFromCorruption(ctx context.Context, ignoreFreelist bool, sqlite3Binary string) (recovery.Result, error) {
	if err := removeOldArtifacts(a.writablePath); err != nil {
		return recovery.Result{}, err
	}

	res, err := recovery.Recover(ctx, recovery.Config{
		SourcePath:     a.projectPath,
		DestPath:       a.writablePath,
		IgnoreFreelist: ignoreFreelist,
		ApplicationID:  applicationID,
		UserVersion:    a.projectVersion,
		SQLite3Binary:  sqlite3Binary,
	})
	if err != nil {
		return res, err
	}

	if err := a.reopenAt(ctx, a.writablePath, false); err != nil {
		return res, err
	}

	return res, nil
}
