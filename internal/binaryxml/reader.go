package binaryxml

import (
	"encoding/binary"
	"math"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
)

// reader walks a decoded Buffer opcode by opcode, mirroring the Stream
// helper class in BinaryXMLConverter.cpp. Multi-byte integers and floats
// are little-endian: the project file is not architecture-independent
// (spec.md §4.1) and this tool only runs on little-endian hosts.
type reader struct {
	buf      *bytebuffer.Buffer
	offset   int
	size     int
	charSize uint8
}

func newReader(buf *bytebuffer.Buffer) *reader {
	return &reader{buf: buf, size: buf.Size()}
}

func (r *reader) eof() bool {
	return r.offset >= r.size
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.offset+n > r.size {
		return nil, aup3err.New(aup3err.Truncated, "unexpected end of stream")
	}
	out := make([]byte, n)
	got := r.buf.Read(out, r.offset)
	if got != n {
		return nil, aup3err.New(aup3err.Truncated, "unexpected end of stream")
	}
	r.offset += n
	return out, nil
}

func (r *reader) readByte() (byte, error) {
	b, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readUint16() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readInt32() (int32, error) {
	v, err := r.readUint32()
	return int32(v), err
}

func (r *reader) readInt64() (int64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) readFloat32() (float32, error) {
	v, err := r.readUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *reader) readFloat64() (float64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) skip(n int) error {
	if r.offset+n > r.size {
		return aup3err.New(aup3err.Truncated, "unexpected end of stream")
	}
	r.offset += n
	return nil
}

// readString reads the next opcode's name-addressable string payload: a
// length (u16 or u32) followed by that many raw bytes, decoded per the
// active CharSize.
func (r *reader) readString(useInt bool) (string, error) {
	var length int
	if useInt {
		n, err := r.readUint32()
		if err != nil {
			return "", err
		}
		length = int(n)
	} else {
		n, err := r.readUint16()
		if err != nil {
			return "", err
		}
		length = int(n)
	}
	raw, err := r.readBytes(length)
	if err != nil {
		return "", err
	}
	return decodeText(raw, r.charSize)
}
