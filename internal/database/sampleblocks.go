package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/sampleformat"
	"aup3tool/internal/wavewriter"
)

// ListBlockIDs returns every block id present in sampleblocks, for
// orphan-detection in model.Project.RemoveUnusedBlocks.
func (a *Adapter) ListBlockIDs(ctx context.Context) ([]int64, error) {
	rows, err := a.db.QueryContext(ctx, "SELECT blockid FROM sampleblocks")
	if err != nil {
		return nil, aup3err.Wrap(aup3err.DbOther, "list block ids", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, aup3err.Wrap(aup3err.DbOther, "scan block id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteBlocks deletes the given block ids inside one transaction,
// mirroring the BEGIN/DELETE.../COMMIT sequence in
// AudacityProject::removeUnusedBlocks, reopening the database writable
// first if needed.
func (a *Adapter) DeleteBlocks(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := a.ReopenWritable(ctx); err != nil {
		return err
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return aup3err.Wrap(aup3err.DbOther, "begin delete blocks tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, "DELETE FROM sampleblocks WHERE blockid = ?", id); err != nil {
			return aup3err.Wrap(aup3err.DbOther, fmt.Sprintf("delete block %d", id), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return aup3err.Wrap(aup3err.DbOther, "commit delete blocks tx", err)
	}
	return nil
}

// Vacuum runs VACUUM, reopening the database writable first if needed.
func (a *Adapter) Vacuum(ctx context.Context) error {
	if err := a.ReopenWritable(ctx); err != nil {
		return err
	}
	if err := a.execWithRetry(ctx, "VACUUM"); err != nil {
		return aup3err.Wrap(aup3err.DbOther, "vacuum", err)
	}
	return nil
}

// CheckBlockFormat implements model.BlockChecker: it reports whether
// blockID exists in sampleblocks and, if so, whether its stored
// sampleformat matches expectedFormat.
func (a *Adapter) CheckBlockFormat(blockID int64, expectedFormat int32) (found bool, formatMatches bool, err error) {
	rows, err := a.db.Query("SELECT sampleformat FROM sampleblocks WHERE blockid = ?", blockID)
	if err != nil {
		return false, false, aup3err.Wrap(aup3err.DbOther, fmt.Sprintf("check block %d", blockID), err)
	}
	defer rows.Close()

	matches := true
	for rows.Next() {
		var format int32
		if err := rows.Scan(&format); err != nil {
			return false, false, aup3err.Wrap(aup3err.DbOther, "scan block format", err)
		}
		found = true
		if format != expectedFormat {
			matches = false
		}
	}
	if err := rows.Err(); err != nil {
		return false, false, aup3err.Wrap(aup3err.DbOther, "iterate block format rows", err)
	}

	return found, found && matches, nil
}

// ReadBlockSamples implements model.BlockReader.
func (a *Adapter) ReadBlockSamples(blockID int64) ([]byte, error) {
	var data []byte
	err := a.db.QueryRow("SELECT samples FROM sampleblocks WHERE blockid = ?", blockID).Scan(&data)
	if err != nil {
		return nil, aup3err.Wrap(aup3err.BlockMissing, fmt.Sprintf("read samples for block %d", blockID), err)
	}
	return data, nil
}

const entriesPerDirectory = 32

// ExtractSampleBlocks writes every sample block in the database to its own
// single-channel WAV file, sharded into {outer:03}/{inner:02} directories
// of entriesPerDirectory files each, grounded on
// AudacityDatabase::extractSampleBlocks.
func (a *Adapter) ExtractSampleBlocks(ctx context.Context, format sampleformat.Format, sampleRate uint32) (int, error) {
	baseDir := filepath.Join(a.dataPath, "sampleblocks")

	rows, err := a.db.QueryContext(ctx, "SELECT blockid, samples FROM sampleblocks")
	if err != nil {
		return 0, aup3err.Wrap(aup3err.DbOther, "select sample blocks", err)
	}
	defer rows.Close()

	outer, inner, fileIndex := 0, 0, 0
	dir := filepath.Join(baseDir, fmt.Sprintf("%03d", outer), fmt.Sprintf("%02d", inner))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, aup3err.Wrap(aup3err.IoFailed, "create sampleblocks shard directory", err)
	}

	count := 0
	for rows.Next() {
		var blockID int64
		var data []byte
		if err := rows.Scan(&blockID, &data); err != nil {
			return count, aup3err.Wrap(aup3err.DbOther, "scan sample block", err)
		}

		wf := wavewriter.New(format, sampleRate, 1)
		wf.WriteBlock(data, 0)

		path := filepath.Join(dir, fmt.Sprintf("%d.wav", blockID))
		if err := writeWaveFile(path, wf); err != nil {
			return count, err
		}
		count++

		fileIndex++
		if fileIndex == entriesPerDirectory {
			fileIndex = 0
			inner++
			if inner == entriesPerDirectory {
				outer++
				inner = 0
			}
			dir = filepath.Join(baseDir, fmt.Sprintf("%03d", outer), fmt.Sprintf("%02d", inner))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return count, aup3err.Wrap(aup3err.IoFailed, "create sampleblocks shard directory", err)
			}
		}
	}

	return count, rows.Err()
}

// ExtractTrack concatenates every sample block into a single mono or
// stereo WAV file, interleaving even/odd block ids across channels when
// asStereo is set, grounded on AudacityDatabase::extractTrack.
func (a *Adapter) ExtractTrack(ctx context.Context, format sampleformat.Format, sampleRate uint32, asStereo bool) error {
	if err := os.MkdirAll(a.dataPath, 0o755); err != nil {
		return aup3err.Wrap(aup3err.IoFailed, "create data directory", err)
	}

	numChannels := uint16(1)
	name := "mono.wav"
	if asStereo {
		numChannels = 2
		name = "stereo.wav"
	}

	wf := wavewriter.New(format, sampleRate, numChannels)

	rows, err := a.db.QueryContext(ctx, "SELECT blockid, samples FROM sampleblocks")
	if err != nil {
		return aup3err.Wrap(aup3err.DbOther, "select sample blocks", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blockID int64
		var data []byte
		if err := rows.Scan(&blockID, &data); err != nil {
			return aup3err.Wrap(aup3err.DbOther, "scan sample block", err)
		}

		channel := uint16(0)
		if asStereo && blockID%2 == 0 {
			channel = 1
		}
		wf.WriteBlock(data, channel)
	}
	if err := rows.Err(); err != nil {
		return aup3err.Wrap(aup3err.DbOther, "iterate sample blocks", err)
	}

	return writeWaveFile(filepath.Join(a.dataPath, name), wf)
}

func writeWaveFile(path string, wf *wavewriter.WaveFile) error {
	f, err := os.Create(path)
	if err != nil {
		return aup3err.Wrap(aup3err.IoFailed, "create wav file", err)
	}
	defer f.Close()

	if err := wf.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}
