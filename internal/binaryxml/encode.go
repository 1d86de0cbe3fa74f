package binaryxml

import (
	"encoding/binary"
	"fmt"
	"math"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
	"aup3tool/internal/xmltree"
)

// floatDigits and doubleDigits are the significant-digit counts Encode
// writes into the u32 field that follows every Float/Double record,
// matching the precision the pretty-printer and the original writer agree
// on for round-tripping IEEE 754 single/double values through decimal.
const (
	floatDigits  = 7
	doubleDigits = 19
)

// Encode serializes root into dict (the CharSize header followed by the
// Name declarations) and doc (tag/
// attribute/data stream) buffers, the split spec.md §4.1 describes between
// the project table's dict and doc blob columns. names is the tree's
// shared NameCache; any tag or attribute name reachable from root that
// isn't already interned is added to names before any Name record is
// written, so re-encoding a tree decoded from the same cache never
// disturbs ids already in use (spec.md open question: additive, not
// renumbering).
func Encode(root *xmltree.Node, names *xmltree.NameCache) (dict, doc *bytebuffer.Buffer, err error) {
	internTree(root, names)

	dict = bytebuffer.New()
	dict.AppendByte(byte(OpCharSize))
	dict.AppendByte(1)
	for _, name := range names.Names() {
		if err := writeName(dict, names, name); err != nil {
			return nil, nil, err
		}
	}

	doc = bytebuffer.New()

	if root != nil {
		if err := writeNode(doc, names, root); err != nil {
			return nil, nil, err
		}
	}

	return dict, doc, nil
}

func internTree(n *xmltree.Node, names *xmltree.NameCache) {
	if n == nil {
		return
	}
	names.Intern(n.Tag)
	for _, a := range n.Attrs {
		names.Intern(a.Name)
	}
	for _, c := range n.Children {
		internTree(c, names)
	}
}

func writeName(buf *bytebuffer.Buffer, names *xmltree.NameCache, name string) error {
	id, ok := names.IndexOf(name)
	if !ok {
		return aup3err.New(aup3err.UnknownName, fmt.Sprintf("name %q missing from cache after interning", name))
	}
	buf.AppendByte(byte(OpName))
	appendUint16(buf, uint16(id))
	raw := []byte(name)
	appendUint16(buf, uint16(len(raw)))
	buf.Append(raw)
	return nil
}

func nameID(names *xmltree.NameCache, name string) (uint16, error) {
	id, ok := names.IndexOf(name)
	if !ok {
		return 0, aup3err.New(aup3err.UnknownName, fmt.Sprintf("name %q not in cache", name))
	}
	return uint16(id), nil
}

func writeNode(buf *bytebuffer.Buffer, names *xmltree.NameCache, n *xmltree.Node) error {
	tagID, err := nameID(names, n.Tag)
	if err != nil {
		return err
	}
	buf.AppendByte(byte(OpStartTag))
	appendUint16(buf, tagID)

	for _, a := range n.Attrs {
		if err := writeAttr(buf, names, a); err != nil {
			return err
		}
	}

	if n.Data != "" {
		buf.AppendByte(byte(OpData))
		raw := []byte(n.Data)
		appendUint32(buf, uint32(len(raw)))
		buf.Append(raw)
	}

	for _, c := range n.Children {
		if err := writeNode(buf, names, c); err != nil {
			return err
		}
	}

	buf.AppendByte(byte(OpEndTag))
	appendUint16(buf, tagID)
	return nil
}

func writeAttr(buf *bytebuffer.Buffer, names *xmltree.NameCache, a xmltree.Attribute) error {
	id, err := nameID(names, a.Name)
	if err != nil {
		return err
	}

	switch a.Value.Kind() {
	case xmltree.KindString:
		buf.AppendByte(byte(OpString))
		appendUint16(buf, id)
		raw := []byte(a.Value.StringValue())
		appendUint32(buf, uint32(len(raw)))
		buf.Append(raw)

	case xmltree.KindBool:
		buf.AppendByte(byte(OpBool))
		appendUint16(buf, id)
		if a.Value.BoolValue() {
			buf.AppendByte(1)
		} else {
			buf.AppendByte(0)
		}

	case xmltree.KindInt32:
		buf.AppendByte(byte(OpInt))
		appendUint16(buf, id)
		appendUint32(buf, uint32(int32(a.Value.Int64Value())))

	case xmltree.KindUint32, xmltree.KindUint:
		buf.AppendByte(byte(OpSizeT))
		appendUint16(buf, id)
		appendUint32(buf, uint32(a.Value.Int64Value()))

	case xmltree.KindInt64:
		buf.AppendByte(byte(OpLongLong))
		appendUint16(buf, id)
		appendUint64(buf, uint64(a.Value.Int64Value()))

	case xmltree.KindFloat32:
		buf.AppendByte(byte(OpFloat))
		appendUint16(buf, id)
		v := float32(a.Value.Float64Value())
		appendUint32(buf, math.Float32bits(v))
		appendUint32(buf, uint32(floatDigits))

	case xmltree.KindFloat64:
		buf.AppendByte(byte(OpDouble))
		appendUint16(buf, id)
		appendUint64(buf, math.Float64bits(a.Value.Float64Value()))
		appendUint32(buf, uint32(doubleDigits))

	default:
		return aup3err.New(aup3err.UnknownName, fmt.Sprintf("attribute %q has unrecognized kind", a.Name))
	}
	return nil
}

func appendUint16(buf *bytebuffer.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.Append(tmp[:])
}

func appendUint32(buf *bytebuffer.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Append(tmp[:])
}

func appendUint64(buf *bytebuffer.Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Append(tmp[:])
}
