package binaryxml

import (
	"fmt"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
	"aup3tool/internal/xmltree"
)

// Decode walks the opcode stream in buf and replays it as StartElement,
// EndElement and CharData calls against sink, in document order.
//
// Grounded on XMLConverter::Parse in
// _examples/original_source/src/BinaryXMLConverter.cpp: CharSize starts at
// 1 and changes only on an explicit OpCharSize record, FT_Long decodes to
// the same 32-bit integer slot as FT_Int (the format does not distinguish
// them once parsed), and Float/Double records carry a trailing u32
// significant-digit count this tool reads and discards.
func Decode(buf *bytebuffer.Buffer, sink Sink) error {
	r := newReader(buf)
	r.charSize = 1

	var names idsLookup
	h := startHelper{sink: sink}

	for !r.eof() {
		opByte, err := r.readByte()
		if err != nil {
			break
		}
		op := Opcode(opByte)
		if !op.valid() {
			return aup3err.New(aup3err.BadOpcode, fmt.Sprintf("unknown opcode %d", opByte))
		}

		switch op {
		case OpCharSize:
			v, err := r.readByte()
			if err != nil {
				return err
			}
			if v != 1 && v != 2 && v != 4 {
				return aup3err.New(aup3err.BadCharSize, fmt.Sprintf("unsupported char size %d", v))
			}
			r.charSize = v

		case OpName:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, err := r.readString(false)
			if err != nil {
				return err
			}
			names.store(id, name)

		case OpStartTag:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			h.open(name)

		case OpEndTag:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			h.closeTag(name)

		case OpString:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			text, err := r.readString(true)
			if err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.String(text)})

		case OpInt, OpLong:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			v, err := r.readInt32()
			if err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.Int32(v)})

		case OpBool:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			v, err := r.readByte()
			if err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.Bool(v != 0)})

		case OpLongLong:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			v, err := r.readInt64()
			if err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.Int64(v)})

		case OpSizeT:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			v, err := r.readUint32()
			if err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.Uint(uint64(v))})

		case OpFloat:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			v, err := r.readFloat32()
			if err != nil {
				return err
			}
			if err := r.skip(4); err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.Float32(v)})

		case OpDouble:
			id, err := r.readUint16()
			if err != nil {
				return err
			}
			name, ok := names.lookup(id)
			if !ok {
				return aup3err.New(aup3err.UndeclaredName, fmt.Sprintf("undeclared name id %d", id))
			}
			v, err := r.readFloat64()
			if err != nil {
				return err
			}
			if err := r.skip(4); err != nil {
				return err
			}
			h.addAttr(xmltree.Attribute{Name: name, Value: xmltree.Float64(v)})

		case OpData:
			text, err := r.readString(true)
			if err != nil {
				return err
			}
			h.data(text)

		case OpRaw:
			n, err := r.readUint32()
			if err != nil {
				return err
			}
			if err := r.skip(int(n)); err != nil {
				return err
			}

		case OpPush, OpPop:
			// Never emitted by Encode and not observed in real project
			// files; treated as no-ops rather than modeled in the tree.

		default:
			return aup3err.New(aup3err.BadOpcode, fmt.Sprintf("unhandled opcode %d", opByte))
		}
	}

	h.finish()
	return nil
}
