package changelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/chlog/internal/git"
)

const (
	fieldSeparator  = "\x1f"
	recordSeparator = "\x1e"

	// recordFormat asks for hash, subject, body, author name, author email and
	// author date, separated by 0x1f and terminated by 0x1e.
	recordFormat = "%H%x1f%s%x1f%b%x1f%an%x1f%ae%x1f%aI%x1e"

	recordFields = 6
)

// LogSource runs a log query and returns the raw formatted output.
type LogSource interface {
	Log(ctx context.Context, q git.LogQuery) (string, error)
}

// CommitHarvester reads the commits between a baseline and a target ref.
type CommitHarvester struct {
	Source LogSource
}

// Harvest returns the non-merge commits reachable from target but not from the
// baseline, newest first. A fallback baseline yields the most recent Window
// commits. A baseline equal to target yields no commits.
func (h *CommitHarvester) Harvest(ctx context.Context, baseline Baseline, target string) ([]CommitRecord, error) {
	q := git.LogQuery{Target: target, Format: recordFormat}
	if baseline.IsFallback() {
		q.MaxCount = baseline.Window
	} else {
		if baseline.Tag == target {
			return nil, nil
		}
		q.Exclude = baseline.Tag
	}

	out, err := h.Source.Log(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("reading commits since %s: %w", baseline, err)
	}

	records := ParseRecords(out)
	logDebug("[harvest] %d commits since %s", len(records), baseline)
	return records, nil
}

// ParseRecords splits raw log output into commit records. Records without at
// least a hash and a subject are dropped.
func ParseRecords(raw string) []CommitRecord {
	var records []CommitRecord

	for _, chunk := range strings.Split(raw, recordSeparator) {
		chunk = strings.TrimLeft(chunk, "\r\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		fields := strings.SplitN(chunk, fieldSeparator, recordFields)
		if len(fields) < 2 {
			logDebug("[harvest] dropping malformed record %q", truncateText(chunk, 40))
			continue
		}
		for len(fields) < recordFields {
			fields = append(fields, "")
		}

		hash := strings.TrimSpace(fields[0])
		subject := strings.TrimSpace(fields[1])
		if !isHexHash(hash) || subject == "" {
			logDebug("[harvest] dropping malformed record %q", truncateText(chunk, 40))
			continue
		}

		records = append(records, CommitRecord{
			Hash:        hash,
			Subject:     subject,
			Body:        strings.TrimSpace(fields[2]),
			AuthorName:  strings.TrimSpace(fields[3]),
			AuthorEmail: strings.TrimSpace(fields[4]),
			Date:        parseDate(fields[5]),
		})
	}

	return records
}

func isHexHash(s string) bool {
	if len(s) < 7 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
