// Package patch implements the text-patching primitives used by conflictpatch.
//
// A Rule is a named transformation over a source buffer. It has an optional
// Guard (a marker check deciding whether the change is already present) and
// an ordered list of Edits. Each Edit locates an Anchor in the buffer and
// inserts or replaces text relative to it.
//
// TRANSFORM CONTRACT:
//
// Edits never fail. When an anchor is absent the edit returns the buffer
// unchanged and reports EditNoAnchor. Insert edits also detect their own
// payload at the insertion point and report EditAlreadyPresent instead of
// inserting twice, so rules without a guard stay idempotent across runs.
//
// Buffers are plain strings. Every edit returns a new value, so a rule never
// observes a partially edited buffer.
//
// ORDERING:
//
// A Sequence is applied strictly in declaration order. Order is part of the
// contract: a later rule may depend on text produced by an earlier one, and
// an earlier guard may be tripped by text a later rule emits. See package
// depgraph for the analysis that makes these constraints explicit.
package patch
