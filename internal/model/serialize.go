package model

import (
	"aup3tool/internal/binaryxml"
	"aup3tool/internal/bytebuffer"
)

// Serialize re-encodes the project tree into dict/doc buffers suitable for
// writing back to the project or autosave blob columns it was read from.
func (p *Project) Serialize() (dict, doc *bytebuffer.Buffer, err error) {
	return binaryxml.Encode(p.Root, p.Names)
}
