package database

import (
	"context"
	"fmt"
	"testing"

	"aup3tool/internal/aup3err"
	"aup3tool/internal/bytebuffer"
	"aup3tool/internal/testsupport"
)

func TestOpenAcceptsMatchingApplicationID(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID, UserVersion: 0})

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	if a.ProjectPath() != path {
		t.Fatalf("ProjectPath() = %q, want %q", a.ProjectPath(), path)
	}
}

func TestOpenWarnsButSucceedsOnMismatchedApplicationID(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: 42, UserVersion: 0})

	adapter, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer adapter.Close()
}

func TestIsSQLiteCorruptRecognizesMalformedMessage(t *testing.T) {
	if !isSQLiteCorrupt(fmt.Errorf("database disk image is malformed")) {
		t.Fatalf("expected malformed message to be classified as corrupt")
	}
	if isSQLiteCorrupt(fmt.Errorf("database is locked")) {
		t.Fatalf("expected unrelated message not to be classified as corrupt")
	}
	if isSQLiteCorrupt(nil) {
		t.Fatalf("expected nil error not to be classified as corrupt")
	}
}

func TestOpenWithRecoveryPassesThroughOnSuccess(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID})

	a, err := OpenWithRecovery(context.Background(), path, "sqlite3", true)
	if err != nil {
		t.Fatalf("OpenWithRecovery: %v", err)
	}
	defer a.Close()
}

func TestOpenWithRecoveryRejectsNewerUserVersionWithoutRetrying(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID, UserVersion: maxSupportedVersion + 1})

	_, err := OpenWithRecovery(context.Background(), path, "sqlite3", true)
	if err == nil {
		t.Fatalf("expected error opening a newer-than-supported project")
	}
	if kind, ok := aup3err.KindOf(err); !ok || kind != aup3err.UnsupportedVersion {
		t.Fatalf("KindOf(err) = %v, %v; want UnsupportedVersion", kind, ok)
	}
}

func TestOpenRejectsNewerUserVersion(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID, UserVersion: maxSupportedVersion + 1})

	_, err := Open(path)
	if err == nil {
		t.Fatalf("expected error opening a newer-than-supported project")
	}
	if kind, ok := aup3err.KindOf(err); !ok || kind != aup3err.UnsupportedVersion {
		t.Fatalf("KindOf(err) = %v, %v; want UnsupportedVersion", kind, ok)
	}
}

func TestHasAutosaveReflectsSeededRow(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID, WithAutosave: true})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	has, err := a.HasAutosave(context.Background())
	if err != nil {
		t.Fatalf("HasAutosave: %v", err)
	}
	if !has {
		t.Fatalf("HasAutosave() = false, want true")
	}
}

func TestWriteThenReadProjectBlobRoundTrips(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.ReopenWritable(ctx); err != nil {
		t.Fatalf("ReopenWritable: %v", err)
	}

	dict := bytebuffer.New()
	dict.Append([]byte{1, 2, 3})
	doc := bytebuffer.New()
	doc.Append([]byte{4, 5, 6})
	if err := a.WriteProjectBlob(ctx, "project", dict, doc); err != nil {
		t.Fatalf("WriteProjectBlob: %v", err)
	}

	got, err := a.ReadProjectBlob(ctx, "project")
	if err != nil {
		t.Fatalf("ReadProjectBlob: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	gotBytes := got.Linearize()
	if len(gotBytes) != len(want) {
		t.Fatalf("Linearize() len = %d, want %d", len(gotBytes), len(want))
	}
	for i := range want {
		if gotBytes[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, gotBytes[i], want[i])
		}
	}
}

func TestCheckIntegrityReportsOK(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	ok, messages, err := a.CheckIntegrity(context.Background())
	if err != nil {
		t.Fatalf("CheckIntegrity: %v", err)
	}
	if !ok {
		t.Fatalf("CheckIntegrity ok = false, messages = %v", messages)
	}
}

func TestListBlockIDsAndDeleteBlocks(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{
		ApplicationID: applicationID,
		SampleBlocks: map[int64][]byte{
			1: {0xAA},
			2: {0xBB},
		},
	})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	ids, err := a.ListBlockIDs(ctx)
	if err != nil {
		t.Fatalf("ListBlockIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len(ids) = %d, want 2", len(ids))
	}

	if err := a.DeleteBlocks(ctx, []int64{1}); err != nil {
		t.Fatalf("DeleteBlocks: %v", err)
	}

	remaining, err := a.ListBlockIDs(ctx)
	if err != nil {
		t.Fatalf("ListBlockIDs: %v", err)
	}
	if len(remaining) != 1 || remaining[0] != 2 {
		t.Fatalf("remaining = %v, want [2]", remaining)
	}
}

func TestReadBlockSamplesReturnsStoredBytes(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{
		ApplicationID: applicationID,
		SampleBlocks:  map[int64][]byte{7: {1, 2, 3, 4}},
	})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	data, err := a.ReadBlockSamples(7)
	if err != nil {
		t.Fatalf("ReadBlockSamples: %v", err)
	}
	if len(data) != 4 {
		t.Fatalf("len(data) = %d, want 4", len(data))
	}
}

func TestReadBlockSamplesMissingBlockIsBlockMissing(t *testing.T) {
	path := testsupport.NewProjectFile(t, testsupport.ProjectOptions{ApplicationID: applicationID})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	_, err = a.ReadBlockSamples(999)
	if err == nil {
		t.Fatalf("expected error for missing block")
	}
	if kind, ok := aup3err.KindOf(err); !ok || kind != aup3err.BlockMissing {
		t.Fatalf("KindOf(err) = %v, %v; want BlockMissing", kind, ok)
	}
}
