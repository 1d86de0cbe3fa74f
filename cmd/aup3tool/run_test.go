package main

import (
	"context"
	"testing"

	"aup3tool/internal/testsupport"
)

func TestActionRequestedFalseForBareCheck(t *testing.T) {
	var f flags
	if f.actionRequested() {
		t.Fatalf("actionRequested() = true for zero-value flags")
	}
}

func TestActionRequestedTrueWhenStatsSet(t *testing.T) {
	f := flags{stats: true}
	if !f.actionRequested() {
		t.Fatalf("actionRequested() = false, want true when stats is set")
	}
}

func TestRunCheckIntegrityOnHealthyFixture(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: 1096107097})

	f := flags{checkIntegrity: true, sampleFormat: "float", sampleRate: 44100, logLevel: "error"}
	if err := run(context.Background(), path, f); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestExitCodeForMissingArgument(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error for missing argument")
	}
	if code := exitCode(err); code != 1 {
		t.Fatalf("exitCode(err) = %d, want 1", code)
	}
}
