package database

import (
	"context"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/recovery"
)

// OpenWithRecovery opens path the same way Open does. When the first
// attempt fails with DbCorrupt and autoRecover is true, it runs the
// external recovery helper once against a ".recovered.aup3" sibling and
// retries Open exactly once against the recovered copy, mirroring
// AudacityDatabase's "observe corruption during construction, recover if
// enabled, retry once" propagation policy.
func OpenWithRecovery(ctx context.Context, path, sqlite3Binary string, autoRecover bool) (*Adapter, error) {
	a, err := Open(path)
	if err == nil {
		return a, nil
	}

	kind, ok := aup3err.KindOf(err)
	if !ok || kind != aup3err.DbCorrupt || !autoRecover {
		return nil, err
	}

	dest := recoveredPath(path)
	if err := removeOldArtifacts(dest); err != nil {
		return nil, err
	}

	if _, err := recovery.Recover(ctx, recovery.Config{
		SourcePath:    path,
		DestPath:      dest,
		ApplicationID: applicationID,
		UserVersion:   maxSupportedVersion,
		SQLite3Binary: sqlite3Binary,
	}); err != nil {
		return nil, err
	}

	return Open(dest)
}
