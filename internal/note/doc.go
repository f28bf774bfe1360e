// Package note builds and merges the per-show vault documents.
//
// A Note is the canonical representation of one show, recomputed on every
// sync from watch history, catalog season summaries and rating events.
// Merging a Note into a previously stored document updates every
// generator-owned field while preserving user-authored content: unknown
// header keys, trailing annotations on watch-progress lines, free text under
// episode blocks, and the General Notes and Notes sections in full. The
// merge is idempotent: re-applying it with unchanged input yields
// byte-identical output.
package note
