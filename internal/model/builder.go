package model

import "aup3tool/internal/xmltree"

// Builder drives an xmltree.Builder and, in the same pass, maintains the
// semantic overlay stack described in ProjectModel.cpp's
// HandleTagStart/HandleTagEnd (there called DeserializedNodeStack): every
// open tag pushes either a concrete overlay node or a nil placeholder, so
// popping it on the matching EndElement always balances the tree stack.
// Builder satisfies binaryxml.Sink structurally, the same way
// xmltree.Builder does.
type Builder struct {
	tree    *xmltree.Builder
	proj    *Project
	overlay []any
}

// NewBuilder returns a Builder ready to receive decode events.
func NewBuilder() *Builder {
	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	return &Builder{
		tree: xmltree.NewBuilder(names, strs),
		proj: &Project{Names: names, Strings: strs},
	}
}

func (b *Builder) top() any {
	if len(b.overlay) == 0 {
		return nil
	}
	return b.overlay[len(b.overlay)-1]
}

// StartElement implements binaryxml.Sink.
func (b *Builder) StartElement(name string, attrs []xmltree.Attribute) {
	b.tree.StartElement(name, attrs)
	node := b.tree.Current()

	switch name {
	case "waveblock":
		parent, _ := b.top().(*Sequence)
		wb := &WaveBlock{Node: node, Parent: parent, parentIndex: len(parent.Blocks)}
		for _, a := range attrs {
			switch a.Name {
			case "start":
				wb.Start = a.Value.Int64Value()
			case "blockid":
				wb.BlockID = a.Value.Int64Value()
			}
		}
		parent.Blocks = append(parent.Blocks, wb)
		b.proj.WaveBlocks = append(b.proj.WaveBlocks, wb)
		b.overlay = append(b.overlay, wb)

	case "sequence":
		parent, _ := b.top().(*Clip)
		seq := &Sequence{Node: node, Parent: parent, parentIndex: len(parent.Sequences)}
		for _, a := range attrs {
			switch a.Name {
			case "maxsamples":
				seq.MaxSamples = a.Value.Int64Value()
			case "numsamples":
				seq.NumSamples = a.Value.Int64Value()
			case "sampleformat":
				seq.Format = int32(a.Value.Int64Value())
			}
		}
		parent.Sequences = append(parent.Sequences, seq)
		b.proj.Sequences = append(b.proj.Sequences, seq)
		b.overlay = append(b.overlay, seq)

	case "waveclip":
		parent, _ := b.top().(*WaveTrack)
		clip := &Clip{Node: node, Parent: parent, ParentIndex: len(parent.Clips)}
		for _, a := range attrs {
			switch a.Name {
			case "name":
				clip.Name = a.Value.StringValue()
			case "offset":
				clip.Offset = a.Value.Float64Value()
			case "trimLeft":
				clip.TrimLeft = a.Value.Float64Value()
			case "trimRight":
				clip.TrimRight = a.Value.Float64Value()
			}
		}
		parent.Clips = append(parent.Clips, clip)
		b.proj.Clips = append(b.proj.Clips, clip)
		b.overlay = append(b.overlay, clip)

	case "wavetrack":
		wt := &WaveTrack{Node: node, ParentIndex: len(b.proj.WaveTracks)}
		for _, a := range attrs {
			switch a.Name {
			case "name":
				wt.Name = a.Value.StringValue()
			case "channel":
				wt.Channel = int32(a.Value.Int64Value())
			case "linked":
				wt.Linked = a.Value.BoolValue()
			case "sampleformat":
				wt.SampleFormat = int32(a.Value.Int64Value())
			case "rate":
				wt.Rate = int32(a.Value.Int64Value())
			}
		}
		b.proj.WaveTracks = append(b.proj.WaveTracks, wt)
		b.overlay = append(b.overlay, wt)

	default:
		b.overlay = append(b.overlay, nil)
	}
}

// EndElement implements binaryxml.Sink.
func (b *Builder) EndElement(name string) {
	b.tree.EndElement(name)
	if len(b.overlay) > 0 {
		b.overlay = b.overlay[:len(b.overlay)-1]
	}
}

// CharData implements binaryxml.Sink.
func (b *Builder) CharData(text string) {
	b.tree.CharData(text)
}

// Finish returns the completed Project. fromAutosave records which blob
// column the tree was decoded from, since saving must write it back to
// the same one (spec.md §5's autosave-over-project precedence).
func (b *Builder) Finish(fromAutosave bool) *Project {
	b.proj.Root = b.tree.Root
	b.proj.FromAutosave = fromAutosave
	return b.proj
}
