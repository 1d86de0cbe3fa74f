// Package model overlays the semantic WaveTrack/Clip/Sequence/WaveBlock
// structure on top of a generic xmltree.Node tree, built in the same pass
// as the tree itself. Grounded on
// _examples/original_source/src/ProjectModel.h/.cpp, whose
// DeserializedNode hierarchy this package's types mirror field-for-field.
package model

import "aup3tool/internal/xmltree"

// WaveBlock is one block reference inside a sequence's block list. Length
// is never stored on the wire; it is derived from the next sibling
// block's start offset, or from the parent sequence's sample count for the
// last block in a sequence.
type WaveBlock struct {
	Node   *xmltree.Node
	Parent *Sequence

	parentIndex int

	Start   int64
	BlockID int64
}

// IsSilence reports whether the block has already been converted to a
// silent placeholder (a negative block id, spec.md §3's convention for
// "no backing sample data").
func (b *WaveBlock) IsSilence() bool {
	return b.BlockID < 0
}

// Length returns the block's sample count, derived rather than stored.
func (b *WaveBlock) Length() int64 {
	blocks := b.Parent.Blocks
	next := b.parentIndex + 1
	if next < len(blocks) {
		return blocks[next].Start - b.Start
	}
	return b.Parent.NumSamples - b.Start
}

// ConvertToSilence rewrites the block in place to a silent placeholder
// whose length still matches what it was before, so sequence sample
// counts remain consistent. The owning tree node is updated to match.
func (b *WaveBlock) ConvertToSilence() {
	b.BlockID = -b.Length()
	b.Node.SetAttribute("blockid", xmltree.Int64(b.BlockID))
	b.Node.SetAttribute("badblock", xmltree.Bool(true))
}

// Sequence is one sample-format run of blocks inside a clip.
type Sequence struct {
	Node   *xmltree.Node
	Parent *Clip

	parentIndex int

	MaxSamples int64
	NumSamples int64
	Format     int32

	Blocks []*WaveBlock
}

// Clip is one placed region of audio on a track.
type Clip struct {
	Node   *xmltree.Node
	Parent *WaveTrack

	ParentIndex int

	Name      string
	Offset    float64
	TrimLeft  float64
	TrimRight float64

	Sequences []*Sequence
}

// WaveTrack is one audio track in the project.
type WaveTrack struct {
	Node *xmltree.Node

	ParentIndex int

	Name         string
	SampleFormat int32
	Rate         int32
	Channel      int32
	Linked       bool

	Clips []*Clip
}

// Project is the fully deserialized project tree plus its semantic
// overlay, the Go analogue of AudacityProject.
type Project struct {
	Root    *xmltree.Node
	Names   *xmltree.NameCache
	Strings *xmltree.StringCache

	FromAutosave bool

	WaveBlocks []*WaveBlock
	Sequences  []*Sequence
	Clips      []*Clip
	WaveTracks []*WaveTrack
}

// ContainsBlock reports whether any wave block in the project references
// blockID.
func (p *Project) ContainsBlock(blockID int64) bool {
	for _, b := range p.WaveBlocks {
		if b.BlockID == blockID {
			return true
		}
	}
	return false
}
