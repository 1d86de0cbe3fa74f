package binaryxml

import "aup3tool/internal/xmltree"

// startHelper defers a StartElement call until the tag's attribute records
// (if any) have all been seen, since the wire format interleaves a tag's
// attributes after its StartTag opcode with no count or terminator.
// Grounded on XMLHandlerHelper in
// _examples/original_source/src/BinaryXMLConverter.cpp, whose destructor
// performs the same flush this type's finish method performs explicitly.
type startHelper struct {
	sink    Sink
	tag     string
	attrs   []xmltree.Attribute
	pending bool
}

func (h *startHelper) open(tag string) {
	h.flush()
	h.tag = tag
	h.attrs = nil
	h.pending = true
}

func (h *startHelper) addAttr(a xmltree.Attribute) {
	h.attrs = append(h.attrs, a)
}

func (h *startHelper) flush() {
	if !h.pending {
		return
	}
	h.sink.StartElement(h.tag, h.attrs)
	h.attrs = nil
	h.pending = false
}

func (h *startHelper) closeTag(tag string) {
	h.flush()
	h.sink.EndElement(tag)
}

func (h *startHelper) data(text string) {
	h.flush()
	h.sink.CharData(text)
}

// finish auto-closes a tag left open at end of stream, mirroring the
// original helper's destructor-time cleanup.
func (h *startHelper) finish() {
	if h.pending {
		h.closeTag(h.tag)
	}
}
