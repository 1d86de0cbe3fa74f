package binaryxml

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// decodeText converts raw string/name/data payload bytes to UTF-8 according
// to the active CharSize record (spec.md §4.2: "Active character-width
// state is held out of band and affects how raw string bytes are
// interpreted"). Width 1 is already UTF-8 and needs no conversion; widths
// 2 and 4 are decoded with golang.org/x/text rather than a hand-rolled
// UTF-16/UTF-32 walk.
func decodeText(raw []byte, charSize uint8) (string, error) {
	switch charSize {
	case 1:
		return string(raw), nil
	case 2:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("utf16le decode: %w", err)
		}
		return string(out), nil
	case 4:
		dec := utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("utf32le decode: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("bad char size %d", charSize)
	}
}
