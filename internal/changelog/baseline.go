package changelog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// DefaultFallbackWindow is the number of recent commits used when no stable tag
// is reachable from the target.
const DefaultFallbackWindow = 30

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for the synthesis pipeline.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// TagSource lists tags and tests whether they are merged into a tip.
type TagSource interface {
	ListTags(ctx context.Context) ([]string, error)
	IsAncestor(ctx context.Context, ref, tip string) (bool, error)
}

// tagCandidate is a tag that survived filtering, with its canonical version.
type tagCandidate struct {
	name    string
	version string
}

// BaselineResolver finds the newest stable release tag that is an ancestor of Tip.
type BaselineResolver struct {
	Tags           TagSource
	Tip            string
	FallbackWindow int
}

// Resolve returns the baseline to diff from. Tags that are not ancestors of the
// tip, whose ancestry cannot be tested, that are not MAJOR.MINOR.PATCH versions,
// or that carry a pre-release qualifier are skipped. With no survivors the
// recent-commits fallback is returned. Only a failure to list tags is an error.
func (r *BaselineResolver) Resolve(ctx context.Context) (Baseline, error) {
	names, err := r.Tags.ListTags(ctx)
	if err != nil {
		return Baseline{}, fmt.Errorf("listing tags: %w", err)
	}

	var candidates []tagCandidate
	for _, name := range names {
		if c, ok := r.evaluate(ctx, name); ok {
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		window := r.FallbackWindow
		if window <= 0 {
			window = DefaultFallbackWindow
		}
		logDebug("[baseline] no stable ancestor tag among %d tags, using last %d commits", len(names), window)
		return Baseline{Window: window}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return semver.Compare(candidates[i].version, candidates[j].version) > 0
	})

	logDebug("[baseline] resolved %s from %d candidates", candidates[0].name, len(candidates))
	return Baseline{Tag: candidates[0].name}, nil
}

// evaluate parses a tag and tests its ancestry. Ancestry failures skip the tag.
func (r *BaselineResolver) evaluate(ctx context.Context, name string) (tagCandidate, bool) {
	version, ok := StableVersion(name)
	if !ok {
		logDebug("[baseline] skipping %s: not a stable release version", name)
		return tagCandidate{}, false
	}

	ancestor, err := r.Tags.IsAncestor(ctx, name, r.Tip)
	if err != nil {
		logDebug("[baseline] skipping %s: ancestry check failed: %v", name, err)
		return tagCandidate{}, false
	}
	if !ancestor {
		logDebug("[baseline] skipping %s: not an ancestor of %s", name, r.Tip)
		return tagCandidate{}, false
	}

	return tagCandidate{name: name, version: version}, true
}

// StableVersion parses a tag name as a full MAJOR.MINOR.PATCH semantic version,
// with an optional leading "v". It returns the canonical "vX.Y.Z" form and false
// for unparseable or pre-release versions.
func StableVersion(tag string) (string, bool) {
	v := "v" + strings.TrimPrefix(tag, "v")
	if !semver.IsValid(v) || semver.Prerelease(v) != "" {
		return "", false
	}

	core, _, _ := strings.Cut(v, "+")
	if strings.Count(core, ".") != 2 {
		return "", false
	}
	return semver.Canonical(v), true
}
