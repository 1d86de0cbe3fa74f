package recovery

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIntAt skips leading spaces at offset and parses the integer that
// follows, returning the value and the offset just past its last digit.
// Mirrors the readInt helper in
// _examples/original_source/src/AudacityDatabase.cpp.
func parseIntAt(line string, offset int) (int64, int, error) {
	for offset < len(line) && line[offset] == ' ' {
		offset++
	}
	start := offset
	if offset < len(line) && (line[offset] == '-' || line[offset] == '+') {
		offset++
	}
	for offset < len(line) && line[offset] >= '0' && line[offset] <= '9' {
		offset++
	}
	if start == offset || (offset == start+1 && (line[start] == '-' || line[start] == '+')) {
		return 0, offset, fmt.Errorf("no integer at offset %d in %q", offset, line)
	}
	v, err := strconv.ParseInt(line[start:offset], 10, 64)
	if err != nil {
		return 0, offset, err
	}
	return v, offset, nil
}

// rewriteLine classifies and, for lost_and_found rows, rewrites one line
// of sqlite3 .recover output. It returns the statement to execute
// (unchanged for everything but lost_and_found), an empty string for
// lines that should be skipped outright (BEGIN/COMMIT/the lost_and_found
// CREATE), and whether the rewritten statement restored a sample block.
//
// .recover emits each lost_and_found row as
// (root_n, n, n_fields, rowid, blockid-or-NULL, sampleformat, summin,
// summax, sumrms, summary256, summary64k, samples); since sampleblocks
// declares blockid as an INTEGER PRIMARY KEY (a rowid alias), the stored
// blockid cell is NULL and the recovered rowid itself is the real value.
// This only handles that common case; a line whose rowid cell can't be
// parsed as an integer (a page corrupted badly enough that even the
// recovered rowid is missing) is reported as an error for the caller to
// log and skip, rather than guessed at.
func rewriteLine(line string) (statement string, isSampleBlock bool, err error) {
	if strings.Contains(line, "BEGIN") || strings.Contains(line, "COMMIT") {
		return "", false, nil
	}
	if !strings.Contains(line, "lost_and_found") {
		return line, false, nil
	}
	if strings.Contains(line, "CREATE") {
		return "", false, nil
	}
	if !strings.Contains(line, "INSERT") {
		return "", false, fmt.Errorf("unsupported lost_and_found line: %s", line)
	}

	openParen := strings.Index(line, "(")
	if openParen < 0 {
		return "", false, fmt.Errorf("malformed lost_and_found insert: %s", line)
	}

	firstComma := strings.Index(line[openParen+1:], ",")
	if firstComma < 0 {
		return "", false, fmt.Errorf("malformed lost_and_found insert: %s", line)
	}
	firstComma += openParen + 1

	secondComma := strings.Index(line[firstComma+1:], ",")
	if secondComma < 0 {
		return "", false, fmt.Errorf("malformed lost_and_found insert: %s", line)
	}
	secondComma += firstComma + 1

	colsCount, colsEnd, err := parseIntAt(line, secondComma+1)
	if err != nil {
		return "", false, fmt.Errorf("read n_fields: %w", err)
	}
	if colsCount != 8 {
		return "", false, fmt.Errorf("unexpected lost_and_found column count %d", colsCount)
	}

	rowID, afterRowID, err := parseIntAt(line, colsEnd+1)
	if err != nil {
		return "", false, fmt.Errorf("read recovered rowid: %w", err)
	}

	const placeholder = "NULL,"
	nullIdx := strings.Index(line[afterRowID:], placeholder)
	if nullIdx < 0 || strings.TrimSpace(line[afterRowID:afterRowID+nullIdx]) != "," {
		return "", false, fmt.Errorf("expected NULL blockid placeholder after rowid %d: %s", rowID, line)
	}
	tailStart := afterRowID + nullIdx + len(placeholder)

	statement = fmt.Sprintf(
		"INSERT OR REPLACE INTO sampleblocks (blockid, sampleformat, summin, summax, sumrms, summary256, summary64k, samples) VALUES(%d,%s",
		rowID, line[tailStart:])

	return statement, true, nil
}
