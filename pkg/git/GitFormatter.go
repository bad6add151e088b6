package git

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel tokens framing structured records inside plain-text git output.
// The record separator is emitted before every record, the field separator
// between fields within a record. Both are ASCII control characters that git
// never emits in commit metadata; a commit body is free text and carries no
// such guarantee, so parsing stays best-effort by design.
const (
	recordSeparator = "\x1e"
	fieldSeparator  = "\x1f"
)

// GITLOGFORMAT frames: full hash, short hash, author name, author email,
// author timestamp (unix seconds), subject, body.
const GITLOGFORMAT = "--pretty=format:%x1e%H%x1f%h%x1f%an%x1f%ae%x1f%at%x1f%s%x1f%b"

// GITGRAPHFORMAT frames: full hash, parent hashes, committer date (strict
// ISO-8601), subject.
const GITGRAPHFORMAT = "--pretty=format:%x1e%H%x1f%P%x1f%cI%x1f%s"

const logFieldCount = 7

// statusLinePattern recognizes a trailing --name-status line: one status
// letter followed by whitespace and the path.
var statusLinePattern = regexp.MustCompile(`^[AMD]\s`)

func parseLogOutput(out string, withFileStatus bool) []*CommitRecord {
	records := make([]*CommitRecord, 0)
	if len(out) == 0 {
		return records
	}
	for _, fragment := range splitRecords(out) {
		records = append(records, parseCommitRecord(fragment, withFileStatus))
	}
	return records
}

func splitRecords(out string) []string {
	fragments := strings.Split(out, recordSeparator)
	if len(fragments) > 0 && fragments[0] == "" {
		// separator at the very start of output
		fragments = fragments[1:]
	}
	return fragments
}

// fieldAt degrades to an empty string on short records: commit bodies are
// user-controlled free text and a surprising shape must never break listing.
func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func parseCommitRecord(fragment string, withFileStatus bool) *CommitRecord {
	fields := strings.SplitN(fragment, fieldSeparator, logFieldCount)
	record := &CommitRecord{
		Hash:        strings.TrimSpace(fieldAt(fields, 0)),
		ShortHash:   strings.TrimSpace(fieldAt(fields, 1)),
		AuthorName:  strings.TrimSpace(fieldAt(fields, 2)),
		AuthorEmail: strings.TrimSpace(fieldAt(fields, 3)),
		Date:        parseUnixTimestamp(fieldAt(fields, 4)),
		Subject:     strings.TrimSpace(fieldAt(fields, 5)),
	}
	record.Body, record.Status = splitBodyAndStatus(fieldAt(fields, 6), withFileStatus)
	return record
}

// splitBodyAndStatus separates the trailing blob into body text and an
// optional --name-status line. The status line is glued to the body by
// newlines, not by the field separator, so the only handle is a convention:
// the last non-empty line is a status line iff it is a single letter from
// {A, M, D} followed by whitespace. A commit message whose own last line
// happens to match is mis-classified; that ambiguity is inherent to the
// framing and is kept as-is.
func splitBodyAndStatus(blob string, withFileStatus bool) (string, FileStatus) {
	if !withFileStatus {
		return strings.TrimSpace(blob), FileStatusUnknown
	}
	lines := strings.Split(blob, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if statusLinePattern.MatchString(line) {
			body := strings.TrimSpace(strings.Join(lines[:i], "\n"))
			return body, statusByLetter[line[0]]
		}
		break
	}
	return strings.TrimSpace(blob), FileStatusUnknown
}

func parseUnixTimestamp(raw string) time.Time {
	seconds, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(seconds, 0)
}

func parseGraphOutput(out string) []*GraphCommitRecord {
	records := make([]*GraphCommitRecord, 0)
	if len(out) == 0 {
		return records
	}
	for _, fragment := range splitRecords(out) {
		fields := strings.SplitN(fragment, fieldSeparator, 4)
		records = append(records, &GraphCommitRecord{
			Hash:    strings.TrimSpace(fieldAt(fields, 0)),
			Parents: strings.Fields(fieldAt(fields, 1)),
			Date:    strings.TrimSpace(fieldAt(fields, 2)),
			Subject: strings.TrimSpace(fieldAt(fields, 3)),
		})
	}
	return records
}
