package model

import "fmt"

// ClipStats summarizes one clip's sample counts and trim ratio, the data
// AudacityProject::printProjectStatistics prints per clip.
type ClipStats struct {
	TrackIndex     int
	TrackName      string
	ClipIndex      int
	ClipName       string
	NumSamples     int64
	TotalSeconds   float64
	TrimmedSeconds float64
	TrimmedPercent float64
}

// BlockUsage tracks how many clips reference a block, and how many of
// those references fall inside the clip's audible (untrimmed) range.
type BlockUsage struct {
	BlockID           int64
	TotalUsageCount   int
	AudibleUsageCount int
}

// ProjectStats is the full statistics report for a project.
type ProjectStats struct {
	Clips []ClipStats

	TotalBlocks          int
	SilentBlocks         int
	UnsharedBlocks       int
	UnsharedSilentBlocks int
}

// Stats computes the report, grounded on
// AudacityProject::printProjectStatistics.
func (p *Project) Stats() ProjectStats {
	usage := make(map[int64]*BlockUsage)

	var clipStats []ClipStats

	for _, track := range p.WaveTracks {
		for _, clip := range track.Clips {
			firstSample := int64(clip.TrimLeft * float64(track.Rate))
			lastSampleOffset := int64(clip.TrimRight * float64(track.Rate))

			var numSamples int64

			for _, seq := range clip.Sequences {
				numSamples += seq.NumSamples
				lastSample := seq.NumSamples - lastSampleOffset

				for _, block := range seq.Blocks {
					u := usage[block.BlockID]
					if u == nil {
						u = &BlockUsage{BlockID: block.BlockID}
						usage[block.BlockID] = u
					}
					u.TotalUsageCount++

					if block.Start+block.Length() >= firstSample && block.Start < lastSample {
						u.AudibleUsageCount++
					}
				}
			}

			totalClipTime := float64(numSamples) / float64(track.Rate)
			trimmedClipTime := totalClipTime - clip.TrimLeft - clip.TrimRight

			clipStats = append(clipStats, ClipStats{
				TrackIndex:     track.ParentIndex,
				TrackName:      track.Name,
				ClipIndex:      clip.ParentIndex,
				ClipName:       clip.Name,
				NumSamples:     numSamples,
				TotalSeconds:   totalClipTime,
				TrimmedSeconds: trimmedClipTime,
				TrimmedPercent: trimmedClipTime / totalClipTime * 100.0,
			})
		}
	}

	stats := ProjectStats{Clips: clipStats, TotalBlocks: len(usage)}
	for _, u := range usage {
		if u.AudibleUsageCount == 0 {
			stats.SilentBlocks++
		}
		if u.TotalUsageCount == 1 {
			stats.UnsharedBlocks++
			if u.AudibleUsageCount == 0 {
				stats.UnsharedSilentBlocks++
			}
		}
	}

	return stats
}

// FormatDuration renders seconds as the original's FormatTime helper
// does: HH:MM:SS.mmm above an hour, MM:SS.mmm above a minute, SS.mmm
// otherwise.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		return fmt.Sprintf("%g", seconds)
	}

	switch {
	case seconds > 3600:
		h := int(seconds) / 3600
		m := int(seconds) / 60 % 60
		s := int(seconds) % 60
		ms := int(seconds*1000) % 1000
		return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
	case seconds > 60:
		m := int(seconds) / 60
		s := int(seconds) % 60
		ms := int(seconds*1000) % 1000
		return fmt.Sprintf("%02d:%02d.%03d", m, s, ms)
	default:
		s := int(seconds)
		ms := int(seconds*1000) % 1000
		return fmt.Sprintf("%02d.%03d", s, ms)
	}
}
