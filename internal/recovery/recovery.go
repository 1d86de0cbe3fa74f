// Package recovery drives the sqlite3 command-line ".recover" dot-command
// against a corrupted project file and rebuilds a usable sampleblocks
// table from whatever rows it manages to salvage into lost_and_found,
// grounded on AudacityDatabase::recoverDatabase.
package recovery

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/deps"
)

// Config describes one recovery run.
type Config struct {
	SourcePath     string
	DestPath       string
	IgnoreFreelist bool
	ApplicationID  int64
	UserVersion    uint32
	// SQLite3Binary overrides the helper binary name/path; "sqlite3" is
	// used when empty.
	SQLite3Binary string
}

// Result summarizes what a recovery run salvaged.
type Result struct {
	RecoveredSampleBlocks int
	SkippedLines          int
}

var prePragmas = []string{
	"PRAGMA page_size = 65536",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA locking_mode = EXCLUSIVE",
	"PRAGMA synchronous = OFF",
	"PRAGMA journal_mode = WAL",
	"PRAGMA wal_autocheckpoint = 1000",
}

var postPragmas = []string{
	"PRAGMA locking_mode = NORMAL",
	"PRAGMA synchronous = NORMAL",
}

// Recover creates cfg.DestPath fresh, spawns the sqlite3 .recover helper
// against cfg.SourcePath, and replays its output into DestPath, rewriting
// any lost_and_found rows back into a sampleblocks table along the way.
func Recover(ctx context.Context, cfg Config) (Result, error) {
	db, err := sql.Open("sqlite", cfg.DestPath)
	if err != nil {
		return Result{}, aup3err.Wrap(aup3err.DbOther, "open recovery destination", err)
	}
	defer db.Close()

	for _, pragma := range prePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return Result{}, aup3err.Wrap(aup3err.DbOther, "apply pre-recovery pragma "+pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return Result{}, aup3err.Wrap(aup3err.DbOther, "pre-recovery vacuum", err)
	}

	res, err := runRecoverHelper(ctx, cfg, db)
	if err != nil {
		return res, err
	}

	// A non-zero exit from the helper was already logged in
	// runRecoverHelper; whatever it salvaged into sampleblocks is still in
	// db, so the post-recovery pragma restoration and VACUUM run regardless.
	for _, pragma := range postPragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return res, aup3err.Wrap(aup3err.DbOther, "apply post-recovery pragma "+pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA application_id = %d", cfg.ApplicationID)); err != nil {
		return res, aup3err.Wrap(aup3err.DbOther, "restore application_id", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", cfg.UserVersion)); err != nil {
		return res, aup3err.Wrap(aup3err.DbOther, "restore user_version", err)
	}
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return res, aup3err.Wrap(aup3err.DbOther, "post-recovery vacuum", err)
	}

	return res, nil
}

func recoverCommand(ignoreFreelist bool) string {
	if ignoreFreelist {
		return ".recover --ignore-freelist"
	}
	return ".recover"
}

// runRecoverHelper spawns the sqlite3 binary and drains its stdout/stderr
// concurrently, the way spindle's makemkv client runs an external ripper
// and scans its stdout for progress lines while stderr accumulates for the
// error path.
func runRecoverHelper(ctx context.Context, cfg Config, db *sql.DB) (Result, error) {
	binary := cfg.SQLite3Binary
	if binary == "" {
		binary = "sqlite3"
	}
	resolved, err := deps.Resolve(binary)
	if err != nil {
		return Result{}, aup3err.Wrap(aup3err.RecoveryHelperFailed, "resolve recovery helper binary", err)
	}

	cmd := exec.CommandContext(ctx, resolved, cfg.SourcePath, recoverCommand(cfg.IgnoreFreelist))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, aup3err.Wrap(aup3err.RecoveryHelperFailed, "open recovery helper stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, aup3err.Wrap(aup3err.RecoveryHelperFailed, "open recovery helper stderr", err)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, aup3err.Wrap(aup3err.RecoveryHelperFailed, "start recovery helper", err)
	}

	var (
		wg        sync.WaitGroup
		stderrBuf strings.Builder
		res       Result
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&stderrBuf, stderr)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		res = scanRecoveredStatements(ctx, stdout, db)
	}()

	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderrBuf.String())
			if msg == "" {
				msg = err.Error()
			}
			return res, aup3err.Wrap(aup3err.RecoveryHelperFailed, msg, err)
		}
		// .recover commonly exits non-zero on badly damaged files after
		// already emitting every row it could salvage; scanRecoveredStatements
		// has applied those rows to db by now, so a bad exit code alone
		// doesn't abort recovery.
		slog.Default().Warn("recovery helper exited non-zero, continuing with what it salvaged",
			"exit_error", exitErr.Error(), "stderr", strings.TrimSpace(stderrBuf.String()))
	}

	return res, nil
}

// scanRecoveredStatements reads one statement per line from r, rewriting
// and executing each against db. A line that fails to parse or execute is
// counted as skipped rather than aborting the run, matching the original
// tool's tolerance for partially-recoverable databases.
func scanRecoveredStatements(ctx context.Context, r io.Reader, db *sql.DB) Result {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var res Result
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		statement, isSampleBlock, err := rewriteLine(line)
		if err != nil {
			slog.Default().Warn("skipping unrecoverable statement", "statement", truncate(line, 256), "error", err)
			res.SkippedLines++
			continue
		}
		if statement == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, statement); err != nil {
			slog.Default().Warn("skipping unrecoverable statement", "statement", truncate(statement, 256), "error", err)
			res.SkippedLines++
			continue
		}
		if isSampleBlock {
			res.RecoveredSampleBlocks++
		}
	}

	return res
}

// truncate shortens s to at most n bytes for display, appending "..." when
// it was cut short.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
