package model

import "fmt"

// BlockChecker looks up a sample block's stored format, the way
// validateBlocks in ProjectModel.cpp queries the sampleblocks table for
// each referenced block id.
type BlockChecker interface {
	CheckBlockFormat(blockID int64, expectedFormat int32) (found bool, formatMatches bool, err error)
}

// ValidateBlocks checks every non-silent block referenced by the project
// against checker and returns the reason each bad block id failed. An id
// already found bad is not checked again; an id that passed is checked
// again for every block that references it.
func (p *Project) ValidateBlocks(checker BlockChecker) (map[int64]string, error) {
	missing := make(map[int64]string)

	for _, b := range p.WaveBlocks {
		if b.IsSilence() {
			continue
		}
		if _, already := missing[b.BlockID]; already {
			continue
		}

		found, formatMatches, err := checker.CheckBlockFormat(b.BlockID, b.Parent.Format)
		if err != nil {
			return nil, err
		}
		if !found {
			missing[b.BlockID] = "block not found"
		} else if !formatMatches {
			missing[b.BlockID] = fmt.Sprintf("format mismatch for block %d", b.BlockID)
		}
	}

	return missing, nil
}

// FixupMissingBlocks validates the project and converts every block whose
// id turned up bad into a silent placeholder of the same length, so
// playback continues without the missing sample data. It reports whether
// any block needed fixing, letting the caller decide whether to write the
// project back out.
func (p *Project) FixupMissingBlocks(checker BlockChecker) (bad map[int64]string, changed bool, err error) {
	bad, err = p.ValidateBlocks(checker)
	if err != nil {
		return nil, false, err
	}

	for _, b := range p.WaveBlocks {
		if _, isBad := bad[b.BlockID]; isBad && !b.IsSilence() {
			b.ConvertToSilence()
		}
	}

	if len(bad) > 0 {
		p.Names.Intern("badblock")
		changed = true
	}

	return bad, changed, nil
}
