// Package binaryxml implements the tag/length-free opcode stream codec
// spec.md §4.2 describes, grounded on
// _examples/original_source/src/BinaryXMLConverter.cpp's FieldTypes enum
// and Stream/XMLConverter classes.
package binaryxml

// Opcode identifies a single-byte record tag in the wire stream.
type Opcode byte

const (
	OpCharSize Opcode = 0
	OpStartTag Opcode = 1
	OpEndTag   Opcode = 2
	OpString   Opcode = 3
	OpInt      Opcode = 4
	OpBool     Opcode = 5
	OpLong     Opcode = 6
	OpLongLong Opcode = 7
	OpSizeT    Opcode = 8
	OpFloat    Opcode = 9
	OpDouble   Opcode = 10
	OpData     Opcode = 11
	OpRaw      Opcode = 12
	OpPush     Opcode = 13
	OpPop      Opcode = 14
	OpName     Opcode = 15
)

func (o Opcode) valid() bool {
	return o <= OpName
}
