package recovery

import (
	"strings"
	"testing"
)

func TestRewriteLineSkipsTransactionMarkers(t *testing.T) {
	for _, line := range []string{"BEGIN;", "COMMIT;"} {
		stmt, isBlock, err := rewriteLine(line)
		if err != nil {
			t.Fatalf("rewriteLine(%q): %v", line, err)
		}
		if stmt != "" || isBlock {
			t.Fatalf("rewriteLine(%q) = %q, %v; want skipped", line, stmt, isBlock)
		}
	}
}

func TestRewriteLinePassesThroughUnrelatedStatements(t *testing.T) {
	line := `INSERT INTO "project" VALUES(1, X'0011', X'2233');`
	stmt, isBlock, err := rewriteLine(line)
	if err != nil {
		t.Fatalf("rewriteLine: %v", err)
	}
	if stmt != line || isBlock {
		t.Fatalf("rewriteLine passthrough = %q, %v", stmt, isBlock)
	}
}

func TestRewriteLineSkipsLostAndFoundCreate(t *testing.T) {
	line := `CREATE TABLE lost_and_found(root_n INT, n INT, n_fields INT, id INT, c0, c1, c2, c3, c4, c5, c6, c7);`
	stmt, isBlock, err := rewriteLine(line)
	if err != nil {
		t.Fatalf("rewriteLine: %v", err)
	}
	if stmt != "" || isBlock {
		t.Fatalf("rewriteLine(CREATE) = %q, %v; want skipped", stmt, isBlock)
	}
}

func TestRewriteLineRebuildsSampleBlockInsert(t *testing.T) {
	line := `INSERT INTO "lost_and_found" VALUES(99, 99, 8, 5735, NULL, 262159, 0, 0, 0, X'ff', X'ee', X'abcd');`

	stmt, isBlock, err := rewriteLine(line)
	if err != nil {
		t.Fatalf("rewriteLine: %v", err)
	}
	if !isBlock {
		t.Fatalf("rewriteLine did not flag a recovered sample block")
	}
	if !strings.Contains(stmt, "INSERT OR REPLACE INTO sampleblocks") {
		t.Fatalf("rewritten statement missing target table: %s", stmt)
	}
	if !strings.Contains(stmt, "VALUES(5735, 262159, 0, 0, 0, X'ff', X'ee', X'abcd');") {
		t.Fatalf("rewritten statement has wrong values: %s", stmt)
	}
}

func TestRewriteLineRejectsUnexpectedColumnCount(t *testing.T) {
	line := `INSERT INTO "lost_and_found" VALUES(99, 99, 3, 5735, NULL, 262159);`
	if _, _, err := rewriteLine(line); err == nil {
		t.Fatalf("expected error for unexpected lost_and_found column count")
	}
}

func TestRewriteLineRejectsMissingBlockIDPlaceholder(t *testing.T) {
	line := `INSERT INTO "lost_and_found" VALUES(99, 99, 8, 5735, 42, 262159, 0, 0, 0, X'ff');`
	if _, _, err := rewriteLine(line); err == nil {
		t.Fatalf("expected error when blockid cell is not NULL")
	}
}

func TestParseIntAtSkipsLeadingSpace(t *testing.T) {
	v, next, err := parseIntAt(" 123,", 0)
	if err != nil {
		t.Fatalf("parseIntAt: %v", err)
	}
	if v != 123 {
		t.Fatalf("parseIntAt value = %d, want 123", v)
	}
	if next != 4 {
		t.Fatalf("parseIntAt next = %d, want 4", next)
	}
}

func TestParseIntAtRejectsNonNumeric(t *testing.T) {
	if _, _, err := parseIntAt("NULL,", 0); err == nil {
		t.Fatalf("expected error parsing non-numeric token")
	}
}

func TestTruncateLeavesShortStringsAlone(t *testing.T) {
	if got := truncate("short", 256); got != "short" {
		t.Fatalf("truncate = %q, want %q", got, "short")
	}
}

func TestTruncateCutsLongStringsWithEllipsis(t *testing.T) {
	s := strings.Repeat("x", 300)
	got := truncate(s, 256)
	if len(got) != 256+3 {
		t.Fatalf("len(truncate(...)) = %d, want %d", len(got), 256+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncate result missing ellipsis suffix: %q", got[len(got)-10:])
	}
}
