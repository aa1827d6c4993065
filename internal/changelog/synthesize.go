package changelog

import (
	"context"
	"fmt"
	"time"
)

// Source is the version-control query interface the pipeline needs.
type Source interface {
	TagSource
	LogSource
}

// Options configures one synthesis run.
type Options struct {
	// Version is the release being written (free-form, usually semver-like).
	Version string
	// TargetRef is the ref whose history is released (default "HEAD").
	TargetRef string
	// Date is printed in the version heading.
	Date time.Time
	// FallbackWindow is the number of commits used when no baseline tag exists.
	FallbackWindow int
	Links          Links
}

// Result is the outcome of a synthesis run. It never implies a write; callers
// persist Document when ShouldPersist returns true.
type Result struct {
	Baseline Baseline
	Commits  []CommitRecord
	Entries  []Entry
	Fragment Fragment
	Document string

	// Applied is true when the fragment was merged into Document.
	Applied bool
	// AlreadyPresent is true when Document already had a heading for the version.
	AlreadyPresent bool
	// NothingToRelease is true when the commit range was empty.
	NothingToRelease bool
}

// ShouldPersist reports whether the caller should write Document to storage.
func (r *Result) ShouldPersist(dryRun bool) bool {
	return r.Applied && !dryRun
}

// Synthesizer runs the baseline, harvest, classify, render and merge stages.
type Synthesizer struct {
	Source Source
}

// Synthesize computes the updated changelog for opts.Version from the existing
// document (exists=false when there is none). Only failures of the version-control
// source itself are returned as errors.
func (s *Synthesizer) Synthesize(ctx context.Context, existing string, exists bool, opts Options) (*Result, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("version is required")
	}
	target := opts.TargetRef
	if target == "" {
		target = "HEAD"
	}
	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	resolver := &BaselineResolver{Tags: s.Source, Tip: target, FallbackWindow: opts.FallbackWindow}
	baseline, err := resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving baseline: %w", err)
	}

	harvester := &CommitHarvester{Source: s.Source}
	commits, err := harvester.Harvest(ctx, baseline, target)
	if err != nil {
		return nil, fmt.Errorf("harvesting commits: %w", err)
	}

	result := &Result{Baseline: baseline, Commits: commits, Document: existing}
	if len(commits) == 0 {
		result.NothingToRelease = true
		return result, nil
	}

	result.Entries = Classify(commits)

	renderer := &Renderer{Links: opts.Links}
	compareURL := opts.Links.CompareURL(compareFrom(baseline, commits), opts.Version)
	result.Fragment = renderer.Render(result.Entries, opts.Version, compareURL, date)

	merged := Merge(existing, exists, result.Fragment, opts.Version)
	result.Document = merged.Document
	result.Applied = merged.Applied
	result.AlreadyPresent = !merged.Applied

	return result, nil
}

// compareFrom is the left side of the compare link: the baseline tag, or the
// oldest harvested commit for the fallback window.
func compareFrom(baseline Baseline, commits []CommitRecord) string {
	if !baseline.IsFallback() {
		return baseline.Tag
	}
	return ShortHash(commits[len(commits)-1].Hash)
}
