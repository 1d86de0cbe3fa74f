package model

// BlockStore lists and deletes sample blocks in the backing database, the
// way removeUnusedBlocks in ProjectModel.cpp issues DELETE statements
// against the sampleblocks table and then VACUUMs.
type BlockStore interface {
	ListBlockIDs() ([]int64, error)
	DeleteBlocks(ids []int64) error
	Vacuum() error
}

// RemoveUnusedBlocks deletes every sample block present in store but not
// referenced by any non-silent wave block in the project, then compacts
// the database. It returns the ids it removed.
func (p *Project) RemoveUnusedBlocks(store BlockStore) ([]int64, error) {
	available, err := store.ListBlockIDs()
	if err != nil {
		return nil, err
	}

	inUse := make(map[int64]bool, len(p.WaveBlocks))
	for _, b := range p.WaveBlocks {
		if !b.IsSilence() {
			inUse[b.BlockID] = true
		}
	}

	var orphaned []int64
	for _, id := range available {
		if !inUse[id] {
			orphaned = append(orphaned, id)
		}
	}

	if len(orphaned) > 0 {
		if err := store.DeleteBlocks(orphaned); err != nil {
			return nil, err
		}
	}

	if err := store.Vacuum(); err != nil {
		return nil, err
	}

	return orphaned, nil
}
