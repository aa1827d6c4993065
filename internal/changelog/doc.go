// Package changelog synthesizes a Markdown changelog entry from conventional commits.
//
// The package implements a linear pipeline:
//   - BaselineResolver picks the newest stable tag reachable from the target
//   - CommitHarvester reads the non-merge commits since that baseline
//   - Classify maps conventional-commit subjects onto ordered categories
//   - Renderer produces the version fragment in fixed category precedence
//   - Merge splices the fragment into the persisted document, once per version
//
// Synthesize runs the whole pipeline without touching storage; Store performs the
// optional atomic write.
package changelog
