// Package sampleformat defines the sample encodings aup3tool understands,
// grounded on _examples/original_source/src/SampleFormat.{h,cpp}.
package sampleformat

import "fmt"

// Format is one of the three sample encodings Audacity projects use. The
// numeric values are the well-known constants stored in project XML and in
// sampleblocks.sampleformat; they are not arbitrary and must not be
// renumbered.
type Format int32

const (
	Int16   Format = 0x00020001
	Int24   Format = 0x00040001
	Float32 Format = 0x0004000F
)

// FromString parses the --sample_format flag value.
func FromString(s string) (Format, error) {
	switch s {
	case "int16":
		return Int16, nil
	case "int24":
		return Int24, nil
	case "float":
		return Float32, nil
	default:
		return 0, fmt.Errorf("unsupported sample format %q", s)
	}
}

func (f Format) String() string {
	switch f {
	case Int16:
		return "int16"
	case Int24:
		return "int24"
	case Float32:
		return "float"
	default:
		return fmt.Sprintf("format(%d)", int32(f))
	}
}

// BytesPerSample is the in-memory width used by sample blocks and clip
// extraction math. Int24 is the one case where memory and disk widths
// diverge: blocks hold tightly packed 3-byte samples in memory while the
// disk representation pads to 4 bytes.
func BytesPerSample(f Format) (uint32, error) {
	switch f {
	case Int16:
		return 2, nil
	case Int24:
		return 3, nil
	case Float32:
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported sample format %d", int32(f))
	}
}

// DiskBytesPerSample is the width used when the original writer padded
// Int24 samples to 4 bytes on disk.
func DiskBytesPerSample(f Format) (uint32, error) {
	switch f {
	case Int16:
		return 2, nil
	case Int24:
		return 4, nil
	case Float32:
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported sample format %d", int32(f))
	}
}

// AudioFormatTag returns the WAV fmt-chunk AudioFormat code: 3 for IEEE
// float, 1 (PCM) otherwise.
func AudioFormatTag(f Format) uint16 {
	if f == Float32 {
		return 3
	}
	return 1
}
