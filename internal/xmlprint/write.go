package xmlprint

import (
	"io"

	"aup3tool/internal/binaryxml"
	"aup3tool/internal/bytebuffer"
)

// WriteXML decodes buf and writes it to w as indented XML, for
// --extract_project style flows that want text rather than a Node tree.
func WriteXML(buf *bytebuffer.Buffer, w io.Writer) error {
	p := New(w, true)
	if err := binaryxml.Decode(buf, p); err != nil {
		return err
	}
	return p.Flush()
}
