package binaryxml

import "aup3tool/internal/xmltree"

// Sink receives decode events in document order. xmltree.Builder satisfies
// this interface structurally; package model's overlay builder wraps a
// Builder and adds its own bookkeeping around the same calls.
type Sink interface {
	StartElement(name string, attrs []xmltree.Attribute)
	EndElement(name string)
	CharData(text string)
}
