package database

import (
	"context"
	"os"
	"path/filepath"

	"aup3tool/internal/binaryxml"
	"aup3tool/internal/model"
)

// LoadProject decodes the project tree, reading from autosave instead of
// project whenever an autosave row exists, matching AudacityProject's
// constructor.
func (a *Adapter) LoadProject(ctx context.Context) (*model.Project, error) {
	fromAutosave, err := a.HasAutosave(ctx)
	if err != nil {
		return nil, err
	}

	table := "project"
	if fromAutosave {
		table = "autosave"
	}

	buf, err := a.ReadProjectBlob(ctx, table)
	if err != nil {
		return nil, err
	}

	b := model.NewBuilder()
	if err := binaryxml.Decode(buf, b); err != nil {
		return nil, err
	}

	return b.Finish(fromAutosave), nil
}

// SaveProject reopens the database writable and writes p back to the
// table it was loaded from.
func (a *Adapter) SaveProject(ctx context.Context, p *model.Project) error {
	if err := a.ReopenWritable(ctx); err != nil {
		return err
	}

	dict, doc, err := p.Serialize()
	if err != nil {
		return err
	}

	table := "project"
	if p.FromAutosave {
		table = "autosave"
	}

	return a.WriteProjectBlob(ctx, table, dict, doc)
}

// WriteClipFiles writes every built clip file under "<data>/clips".
func (a *Adapter) WriteClipFiles(files []model.ClipFile) error {
	dir := filepath.Join(a.dataPath, "clips")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, cf := range files {
		if err := writeWaveFile(filepath.Join(dir, cf.Name), cf.File); err != nil {
			return err
		}
	}
	return nil
}
