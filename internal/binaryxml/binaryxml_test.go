package binaryxml

import (
	"testing"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
	"aup3tool/internal/xmltree"
)

func buildSample() (*xmltree.Node, *xmltree.NameCache) {
	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	b := xmltree.NewBuilder(names, strs)

	b.StartElement("project", []xmltree.Attribute{
		{Name: "version", Value: xmltree.String("3.3.0")},
	})
	b.StartElement("wavetrack", []xmltree.Attribute{
		{Name: "name", Value: xmltree.String("Track 1")},
		{Name: "channel", Value: xmltree.Int32(0)},
		{Name: "rate", Value: xmltree.Float64(44100.0)},
		{Name: "mute", Value: xmltree.Bool(false)},
	})
	b.CharData("")
	b.EndElement("wavetrack")
	b.EndElement("project")

	return b.Root, names
}

func TestRoundTripPreservesTreeShape(t *testing.T) {
	root, names := buildSample()

	dict, doc, err := Encode(root, names)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	full := bytebuffer.New()
	full.Append(dict.Linearize())
	full.Append(doc.Linearize())

	decodeNames := xmltree.NewNameCache()
	decodeStrs := xmltree.NewStringCache()
	decodeBuilder := xmltree.NewBuilder(decodeNames, decodeStrs)

	if err := Decode(full, decodeBuilder); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := decodeBuilder.Root
	if got == nil || got.Tag != "project" {
		t.Fatalf("unexpected root: %+v", got)
	}
	if len(got.Children) != 1 || got.Children[0].Tag != "wavetrack" {
		t.Fatalf("unexpected children: %+v", got.Children)
	}

	track := got.Children[0]
	rate, ok := track.Attribute("rate")
	if !ok || rate.Float64Value() != 44100.0 {
		t.Fatalf("rate attribute lost precision: %v, %v", rate, ok)
	}
	mute, ok := track.Attribute("mute")
	if !ok || mute.BoolValue() != false {
		t.Fatalf("mute attribute mismatch: %v, %v", mute, ok)
	}
	channel, ok := track.Attribute("channel")
	if !ok || channel.Int64Value() != 0 {
		t.Fatalf("channel attribute mismatch: %v, %v", channel, ok)
	}
}

func TestDecodeHonorsCharSizeSwitch(t *testing.T) {
	buf := bytebuffer.New()
	buf.AppendByte(byte(OpCharSize))
	buf.AppendByte(1)
	buf.AppendByte(byte(OpName))
	appendUint16(buf, 0)
	raw := []byte("root")
	appendUint16(buf, uint16(len(raw)))
	buf.Append(raw)

	buf.AppendByte(byte(OpCharSize))
	buf.AppendByte(2)

	buf.AppendByte(byte(OpStartTag))
	appendUint16(buf, 0)
	buf.AppendByte(byte(OpEndTag))
	appendUint16(buf, 0)

	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	b := xmltree.NewBuilder(names, strs)

	if err := Decode(buf, b); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Root == nil || b.Root.Tag != "root" {
		t.Fatalf("unexpected root: %+v", b.Root)
	}
}

func TestDecodeRejectsUndeclaredName(t *testing.T) {
	buf := bytebuffer.New()
	buf.AppendByte(byte(OpCharSize))
	buf.AppendByte(1)
	buf.AppendByte(byte(OpStartTag))
	appendUint16(buf, 42)

	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	b := xmltree.NewBuilder(names, strs)

	err := Decode(buf, b)
	if err == nil {
		t.Fatal("expected error for undeclared name id")
	}
	if kind, ok := aup3err.KindOf(err); !ok || kind != aup3err.UndeclaredName {
		t.Fatalf("unexpected error kind: %v, %v (%v)", kind, ok, err)
	}
}

func TestDecodeRejectsUnknownOpcode(t *testing.T) {
	buf := bytebuffer.New()
	buf.AppendByte(byte(OpCharSize))
	buf.AppendByte(1)
	buf.AppendByte(200)

	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	b := xmltree.NewBuilder(names, strs)

	if err := Decode(buf, b); err == nil {
		t.Fatal("expected error for unknown opcode")
	}
}

func TestDecodeRejectsTruncatedStream(t *testing.T) {
	buf := bytebuffer.New()
	buf.AppendByte(byte(OpCharSize))
	// missing the char size value byte

	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	b := xmltree.NewBuilder(names, strs)

	if err := Decode(buf, b); err == nil {
		t.Fatal("expected error for truncated stream")
	}
}

func TestDecodeAutoClosesDanglingOpenTag(t *testing.T) {
	buf := bytebuffer.New()
	buf.AppendByte(byte(OpCharSize))
	buf.AppendByte(1)
	buf.AppendByte(byte(OpName))
	appendUint16(buf, 0)
	raw := []byte("root")
	appendUint16(buf, uint16(len(raw)))
	buf.Append(raw)
	buf.AppendByte(byte(OpStartTag))
	appendUint16(buf, 0)
	// stream ends with the tag never explicitly closed

	names := xmltree.NewNameCache()
	strs := xmltree.NewStringCache()
	b := xmltree.NewBuilder(names, strs)

	if err := Decode(buf, b); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Root == nil || b.Root.Tag != "root" {
		t.Fatalf("unexpected root: %+v", b.Root)
	}
}
