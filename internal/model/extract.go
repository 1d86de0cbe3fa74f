package model

import (
	"fmt"
	"math"

	"aup3tool/internal/sampleformat"
	"aup3tool/internal/wavewriter"
)

// BlockReader fetches a sample block's raw bytes from the backing
// database, mirroring the "SELECT samples FROM sampleblocks WHERE
// blockid = ?1" query in ProjectModel.cpp's extractClips.
type BlockReader interface {
	ReadBlockSamples(blockID int64) ([]byte, error)
}

// ClipFile pairs a clip's target WAV filename with its built contents.
// The caller decides where and how to write it; model does no file I/O.
type ClipFile struct {
	Name string
	File *wavewriter.WaveFile
}

func roundHalfAwayFromZero(v float64) int64 {
	if v < 0 {
		return int64(math.Ceil(v - 0.5))
	}
	return int64(math.Floor(v + 0.5))
}

// BuildClipFiles renders every clip in the project to an in-memory
// single-channel WaveFile, trimming each sequence to [trimLeft, duration -
// trimRight) and substituting zero-filled silence for silent blocks; a
// block whose samples cannot be read fails the call. Grounded on
// AudacityProject::extractClips.
func (p *Project) BuildClipFiles(reader BlockReader) ([]ClipFile, error) {
	var out []ClipFile

	for _, clip := range p.Clips {
		track := clip.Parent
		format := sampleformat.Format(track.SampleFormat)

		bytesPerSample, err := sampleformat.BytesPerSample(format)
		if err != nil {
			return nil, err
		}

		file := wavewriter.New(format, uint32(track.Rate), 1)

		firstSample := roundHalfAwayFromZero(clip.TrimLeft * float64(track.Rate))

		for _, seq := range clip.Sequences {
			lastSample := seq.NumSamples - roundHalfAwayFromZero(clip.TrimRight*float64(track.Rate))

			silence := make([]byte, seq.MaxSamples*int64(bytesPerSample))

			for _, block := range seq.Blocks {
				blockStart := block.Start
				blockLength := block.Length()
				blockEnd := blockStart + blockLength

				if blockEnd <= firstSample || blockStart >= lastSample {
					continue
				}

				if blockStart < firstSample {
					blockStart = firstSample
				}
				if blockEnd > lastSample {
					blockEnd = lastSample
				}
				blockLength = blockEnd - blockStart
				if blockLength <= 0 {
					continue
				}

				if block.BlockID < 0 {
					file.WriteBlock(silence[:blockLength*int64(bytesPerSample)], 0)
					continue
				}

				data, err := reader.ReadBlockSamples(block.BlockID)
				if err != nil {
					return nil, err
				}
				want := blockLength * int64(bytesPerSample)
				skip := (blockStart - block.Start) * int64(bytesPerSample)
				if int64(len(data)) < skip+want {
					return nil, fmt.Errorf("unexpected blob size for sample block %d", block.BlockID)
				}
				file.WriteBlock(data[skip:skip+want], 0)
			}
		}

		name := fmt.Sprintf("%d_%s_%d_%s.wav", track.ParentIndex, track.Name, clip.ParentIndex, clip.Name)
		out = append(out, ClipFile{Name: name, File: file})
	}

	return out, nil
}
