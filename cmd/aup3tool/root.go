package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// flags mirrors the CLI surface's operations and flag names exactly;
// flag names are contractual, grounded on five82-spindle/cmd/spindle/root.go's
// pattern of binding every flag straight to a local struct field.
type flags struct {
	dropAutosave         bool
	extractProject       bool
	checkIntegrity       bool
	compact              bool
	recoverDB            bool
	recoverProject       bool
	extractClips         bool
	extractSampleBlocks  bool
	extractAsMonoTrack   bool
	extractAsStereoTrack bool
	sampleRate           uint32
	sampleFormat         string
	ignoreFreelist       bool
	stats                bool
	logLevel             string
	logFormat            string
	configPath           string
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "aup3tool <project.aup3>",
		Short:         "Inspect, repair, and extract audio from Audacity .aup3 project files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return newCLIError(1, fmt.Errorf("expected exactly one project file argument"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], f)
		},
	}

	flagset := cmd.Flags()
	flagset.BoolVar(&f.dropAutosave, "drop_autosave", false, "remove the autosave row, keeping the canonical project row")
	flagset.BoolVar(&f.extractProject, "extract_project", false, "write <name>.project.xml and, if present, <name>.autosave.xml")
	flagset.BoolVar(&f.checkIntegrity, "check_integrity", false, "run PRAGMA integrity_check and report the result")
	flagset.BoolVar(&f.compact, "compact", false, "remove sample blocks no longer referenced by the project")
	flagset.BoolVar(&f.recoverDB, "recover_db", false, "run the sqlite3 .recover helper against a corrupted database")
	flagset.BoolVar(&f.recoverProject, "recover_project", false, "validate sample blocks and fix up any missing ones")
	flagset.BoolVar(&f.extractClips, "extract_clips", false, "write one WAV file per clip")
	flagset.BoolVar(&f.extractSampleBlocks, "extract_sample_blocks", false, "write one WAV file per sample block, sharded into directories")
	flagset.BoolVar(&f.extractAsMonoTrack, "extract_as_mono_track", false, "concatenate every sample block into a single mono WAV file")
	flagset.BoolVar(&f.extractAsStereoTrack, "extract_as_stereo_track", false, "concatenate every sample block into a single stereo WAV file")
	flagset.Uint32Var(&f.sampleRate, "sample_rate", 44100, "sample rate stamped on extracted WAV files")
	flagset.StringVar(&f.sampleFormat, "sample_format", "float", "sample format for extracted WAV files: int16, int24, float")
	flagset.BoolVar(&f.ignoreFreelist, "ignore_freelist", false, "pass --ignore-freelist through to the recovery helper")
	flagset.BoolVar(&f.stats, "stats", false, "print a project statistics report")
	flagset.StringVar(&f.logLevel, "log_level", "info", "log level: debug, info, warn, error")
	flagset.StringVar(&f.logFormat, "log_format", "", "log format: console, json (default: log_format from the config file, console unless set)")
	flagset.StringVarP(&f.configPath, "config", "c", "", "configuration file path")

	return cmd
}
