package xmltree

import (
	"strconv"
)

// Kind tags the concrete type carried by an AttrValue. The codec keeps an
// Int32 from becoming a Uint32, which share a Go field width but not an
// opcode byte. Two wire types are not kept apart: a Long record decodes
// to KindInt32 and re-encodes as Int, and KindUint32 encodes as SizeT and
// decodes back as KindUint.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt32
	KindUint32
	KindInt64
	KindUint // machine-size unsigned ("SizeT" in the wire format)
	KindFloat32
	KindFloat64
	KindString
)

// AttrValue is the tagged union over the seven numeric kinds plus string
// that spec.md §3 describes for attribute values.
type AttrValue struct {
	kind Kind
	b    bool
	i32  int32
	u32  uint32
	i64  int64
	u    uint64
	f32  float32
	f64  float64
	s    string
}

func Bool(v bool) AttrValue       { return AttrValue{kind: KindBool, b: v} }
func Int32(v int32) AttrValue     { return AttrValue{kind: KindInt32, i32: v} }
func Uint32(v uint32) AttrValue   { return AttrValue{kind: KindUint32, u32: v} }
func Int64(v int64) AttrValue     { return AttrValue{kind: KindInt64, i64: v} }
func Uint(v uint64) AttrValue     { return AttrValue{kind: KindUint, u: v} }
func Float32(v float32) AttrValue { return AttrValue{kind: KindFloat32, f32: v} }
func Float64(v float64) AttrValue { return AttrValue{kind: KindFloat64, f64: v} }
func String(v string) AttrValue   { return AttrValue{kind: KindString, s: v} }

func (v AttrValue) Kind() Kind { return v.kind }

// Int64Value coerces the value to an int64, the way the semantic model
// reads start/blockid/numsamples attributes regardless of their exact
// stored width.
func (v AttrValue) Int64Value() int64 {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt32:
		return int64(v.i32)
	case KindUint32:
		return int64(v.u32)
	case KindInt64:
		return v.i64
	case KindUint:
		return int64(v.u)
	case KindFloat32:
		return int64(v.f32)
	case KindFloat64:
		return int64(v.f64)
	case KindString:
		n, _ := strconv.ParseInt(v.s, 10, 64)
		return n
	}
	return 0
}

// Float64Value coerces the value to a float64, used for offset/trimLeft/
// trimRight attributes.
func (v AttrValue) Float64Value() float64 {
	switch v.kind {
	case KindFloat32:
		return float64(v.f32)
	case KindFloat64:
		return v.f64
	case KindString:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	default:
		return float64(v.Int64Value())
	}
}

// BoolValue coerces the value to a bool.
func (v AttrValue) BoolValue() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s == "true" || v.s == "1"
	default:
		return v.Int64Value() != 0
	}
}

// StringValue returns the value's string form, used by string-kind
// attributes such as names, and by the XML pretty-printer for any kind.
func (v AttrValue) StringValue() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindInt32:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindUint32:
		return strconv.FormatUint(uint64(v.u32), 10)
	case KindInt64:
		return strconv.FormatInt(v.i64, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	}
	return ""
}

// Attribute pairs a name with its tagged value. Names are borrowed from a
// Node's owning NameCache; the name string itself is stored here for
// convenience since Go strings carry no ownership concerns.
type Attribute struct {
	Name  string
	Value AttrValue
}
