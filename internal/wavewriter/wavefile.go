// Package wavewriter builds RIFF/WAVE files out of raw PCM sample bytes,
// grounded on _examples/original_source/src/WaveFile.h/.cpp. Each channel
// accumulates into its own bytebuffer.Buffer exactly as the original's
// WaveFile::mChannels does, and writeFile's per-sample interleave loop is
// carried over unchanged in shape.
package wavewriter

import (
	"encoding/binary"
	"io"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
	"aup3tool/internal/sampleformat"
)

const headerSize = 44

// WaveFile accumulates per-channel sample bytes and writes a single
// interleaved RIFF/WAVE file once all blocks have been appended.
type WaveFile struct {
	format      sampleformat.Format
	sampleRate  uint32
	numChannels uint16
	channels    []*bytebuffer.Buffer
}

// New returns a WaveFile ready to accept blocks for numChannels channels.
func New(format sampleformat.Format, sampleRate uint32, numChannels uint16) *WaveFile {
	channels := make([]*bytebuffer.Buffer, numChannels)
	for i := range channels {
		channels[i] = bytebuffer.New()
	}
	return &WaveFile{format: format, sampleRate: sampleRate, numChannels: numChannels, channels: channels}
}

// WriteBlock appends data to the given channel's accumulated sample bytes.
func (w *WaveFile) WriteBlock(data []byte, channel uint16) {
	w.channels[channel].Append(data)
}

// WriteTo writes the accumulated channels to out as a 44-byte-header WAV
// file. Channels shorter than the longest one are zero-padded, matching
// the original's "buffer has at least one sample in this case, else
// memset zero" fallback.
func (w *WaveFile) WriteTo(out io.Writer) error {
	bytesPerSample, err := sampleformat.BytesPerSample(w.format)
	if err != nil {
		return err
	}

	maxSize := 0
	for _, c := range w.channels {
		if c.Size() > maxSize {
			maxSize = c.Size()
		}
	}

	dataSize := uint32(len(w.channels)) * uint32(maxSize)

	if err := writeHeader(out, w.format, w.sampleRate, w.numChannels, bytesPerSample, dataSize); err != nil {
		return err
	}

	maxSamples := maxSize / int(bytesPerSample)
	sample := make([]byte, int(w.numChannels)*int(bytesPerSample))

	for i := 0; i < maxSamples; i++ {
		offset := i * int(bytesPerSample)

		for ch, buf := range w.channels {
			dst := sample[ch*int(bytesPerSample) : (ch+1)*int(bytesPerSample)]
			if buf.Size() >= offset+int(bytesPerSample) {
				buf.Read(dst, offset)
			} else {
				for j := range dst {
					dst[j] = 0
				}
			}
		}

		if _, err := out.Write(sample); err != nil {
			return aup3err.Wrap(aup3err.IoFailed, "write wav sample", err)
		}
	}

	return nil
}

func writeHeader(out io.Writer, format sampleformat.Format, sampleRate uint32, numChannels uint16, bytesPerSample uint32, dataSize uint32) error {
	var h [headerSize]byte

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], sampleformat.AudioFormatTag(format))
	binary.LittleEndian.PutUint16(h[22:24], numChannels)
	binary.LittleEndian.PutUint32(h[24:28], sampleRate)
	byteRate := sampleRate * uint32(numChannels) * bytesPerSample
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	blockAlign := uint16(numChannels) * uint16(bytesPerSample)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], uint16(bytesPerSample*8))
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	if _, err := out.Write(h[:]); err != nil {
		return aup3err.Wrap(aup3err.IoFailed, "write wav header", err)
	}
	return nil
}
