package wavewriter

import (
	"bytes"
	"encoding/binary"
	"testing"

	"aup3tool/internal/sampleformat"
)

func TestWriteToProducesValidHeader(t *testing.T) {
	w := New(sampleformat.Int16, 44100, 1)
	w.WriteBlock([]byte{1, 0, 2, 0, 3, 0}, 0)

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	out := buf.Bytes()
	if len(out) != headerSize+6 {
		t.Fatalf("unexpected output length %d", len(out))
	}
	if string(out[0:4]) != "RIFF" || string(out[8:12]) != "WAVE" {
		t.Fatalf("malformed RIFF header: %q", out[:12])
	}
	audioFormat := binary.LittleEndian.Uint16(out[20:22])
	if audioFormat != 1 {
		t.Fatalf("AudioFormat = %d, want 1", audioFormat)
	}
	dataSize := binary.LittleEndian.Uint32(out[40:44])
	if dataSize != 6 {
		t.Fatalf("Subchunk2Size = %d, want 6", dataSize)
	}
}

func TestWriteToZeroPadsShortChannels(t *testing.T) {
	w := New(sampleformat.Float32, 48000, 2)
	w.WriteBlock([]byte{1, 1, 1, 1, 2, 2, 2, 2}, 0)
	w.WriteBlock([]byte{9, 9, 9, 9}, 1)

	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	data := buf.Bytes()[headerSize:]
	if len(data) != 16 {
		t.Fatalf("unexpected data length %d", len(data))
	}
	secondFrame := data[8:16]
	want := []byte{2, 2, 2, 2, 0, 0, 0, 0}
	if !bytes.Equal(secondFrame, want) {
		t.Fatalf("second frame = %v, want %v", secondFrame, want)
	}
}
