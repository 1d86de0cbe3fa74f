package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/config"
	"aup3tool/internal/database"
	"aup3tool/internal/logging"
	"aup3tool/internal/model"
	"aup3tool/internal/preflight"
	"aup3tool/internal/sampleformat"
	"aup3tool/internal/xmlprint"
)

// actionRequested reports whether the caller asked for anything beyond a
// plain integrity check, the condition §6's exit code 3 keys off.
func (f flags) actionRequested() bool {
	return f.dropAutosave || f.extractProject || f.compact || f.recoverDB ||
		f.recoverProject || f.extractClips || f.extractSampleBlocks ||
		f.extractAsMonoTrack || f.extractAsStereoTrack || f.stats
}

func run(ctx context.Context, path string, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return newCLIError(-1, err)
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}

	logger, err := logging.New(logging.Options{Level: f.logLevel, Format: cfg.LogFormat, Writer: os.Stderr})
	if err != nil {
		return newCLIError(-1, err)
	}

	sqlite3Binary := cfg.Recovery.SQLite3Binary
	for _, result := range preflight.RunAll(path, sqlite3Binary) {
		if !result.Passed {
			logger.Warn("preflight check failed", "name", result.Name, "detail", result.Detail)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return newCLIError(-1, fmt.Errorf("acquire lock on %s: %w", path, err))
	}
	if !locked {
		return newCLIError(-1, fmt.Errorf("%s is already in use by another aup3tool run", path))
	}
	defer func() { _ = lock.Unlock() }()

	format, err := sampleformat.FromString(f.sampleFormat)
	if err != nil {
		return newCLIError(-1, err)
	}

	adapter, err := database.OpenWithRecovery(ctx, path, sqlite3Binary, cfg.Recovery.AutoRecover)
	if err != nil {
		return newCLIError(-1, err)
	}
	defer adapter.Close()

	ok, messages, err := adapter.CheckIntegrity(ctx)
	if err != nil {
		return newCLIError(-1, err)
	}
	if f.checkIntegrity {
		reportIntegrity(ok, messages)
	}
	if !ok {
		logger.Warn("integrity check failed", "messages", messages)
		if !f.actionRequested() {
			return newCLIError(3, fmt.Errorf("integrity check failed and no extraction mode requested"))
		}
	}

	if f.recoverDB {
		result, err := adapter.RecoverFromCorruption(ctx, f.ignoreFreelist, sqlite3Binary)
		if err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("database recovered", "sample_blocks_recovered", result.RecoveredSampleBlocks, "lines_skipped", result.SkippedLines)
	}

	if f.dropAutosave {
		if err := adapter.DropAutosave(ctx); err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("autosave dropped")
	}

	if f.extractProject {
		if err := extractProjectXML(ctx, adapter); err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("project xml extracted", "dir", filepath.Dir(path))
	}

	needsProject := f.compact || f.recoverProject || f.extractClips || f.stats
	var proj *model.Project
	if needsProject {
		proj, err = adapter.LoadProject(ctx)
		if err != nil {
			return newCLIError(-1, err)
		}
	}

	if f.recoverProject {
		bad, changed, err := proj.FixupMissingBlocks(adapter)
		if err != nil {
			return newCLIError(-1, err)
		}
		if changed {
			if err := adapter.SaveProject(ctx, proj); err != nil {
				return newCLIError(-1, err)
			}
		}
		logger.Info("project recovery complete", "bad_blocks", len(bad))
	}

	if f.compact {
		removed, err := proj.RemoveUnusedBlocks(adapter.WithContext(ctx))
		if err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("compact complete", "blocks_removed", len(removed))
	}

	if f.extractClips {
		files, err := proj.BuildClipFiles(adapter)
		if err != nil {
			return newCLIError(-1, err)
		}
		if err := adapter.WriteClipFiles(files); err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("clips extracted", "count", len(files))
	}

	if f.extractSampleBlocks {
		count, err := adapter.ExtractSampleBlocks(ctx, format, f.sampleRate)
		if err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("sample blocks extracted", "count", count)
	}

	if f.extractAsMonoTrack {
		if err := adapter.ExtractTrack(ctx, format, f.sampleRate, false); err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("mono track extracted")
	}

	if f.extractAsStereoTrack {
		if err := adapter.ExtractTrack(ctx, format, f.sampleRate, true); err != nil {
			return newCLIError(-1, err)
		}
		logger.Info("stereo track extracted")
	}

	if f.stats {
		printStats(proj.Stats())
	}

	return nil
}

func extractProjectXML(ctx context.Context, a *database.Adapter) error {
	if err := writeBlobXML(ctx, a, "project", a.ProjectPath(), ".project.xml"); err != nil {
		return err
	}

	hasAutosave, err := a.HasAutosave(ctx)
	if err != nil {
		return err
	}
	if hasAutosave {
		if err := writeBlobXML(ctx, a, "autosave", a.ProjectPath(), ".autosave.xml"); err != nil {
			return err
		}
	}
	return nil
}

func writeBlobXML(ctx context.Context, a *database.Adapter, table, projectPath, suffix string) error {
	buf, err := a.ReadProjectBlob(ctx, table)
	if err != nil {
		return err
	}

	dir := filepath.Dir(projectPath)
	base := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))
	outPath := filepath.Join(dir, base+suffix)

	out, err := os.Create(outPath)
	if err != nil {
		return aup3err.Wrap(aup3err.IoFailed, "create "+outPath, err)
	}
	defer out.Close()

	if err := xmlprint.WriteXML(buf, out); err != nil {
		return err
	}
	return out.Close()
}

func reportIntegrity(ok bool, messages []string) {
	if ok {
		fmt.Println(renderTable([]string{"Integrity Check"}, [][]string{{"ok"}}, nil))
		return
	}
	rows := make([][]string, 0, len(messages))
	for _, msg := range messages {
		rows = append(rows, []string{msg})
	}
	fmt.Println(renderTable([]string{"Integrity Check Diagnostics"}, rows, nil))
}

func printStats(stats model.ProjectStats) {
	headers := []string{"Track", "Clip", "Samples", "Duration", "Trimmed %"}
	rows := make([][]string, 0, len(stats.Clips))
	for _, c := range stats.Clips {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.TrackIndex),
			c.ClipName,
			fmt.Sprintf("%d", c.NumSamples),
			model.FormatDuration(c.TotalSeconds),
			fmt.Sprintf("%.1f", c.TrimmedPercent),
		})
	}
	fmt.Println(renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight}))

	summaryHeaders := []string{"Total Blocks", "Silent Blocks", "Unshared Blocks", "Unshared Silent Blocks"}
	summaryRow := [][]string{{
		fmt.Sprintf("%d", stats.TotalBlocks),
		fmt.Sprintf("%d", stats.SilentBlocks),
		fmt.Sprintf("%d", stats.UnsharedBlocks),
		fmt.Sprintf("%d", stats.UnsharedSilentBlocks),
	}}
	fmt.Println(renderTable(summaryHeaders, summaryRow, []columnAlignment{alignRight, alignRight, alignRight, alignRight}))
}
