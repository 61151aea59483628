// Package engine drives a patch sequence over a source buffer.
//
// The engine is the heart of conflictpatch: it threads one buffer through
// every rule of a sequence, in order, and records what each rule did.
//
// ARCHITECTURE:
//
// Single pass, single goroutine:
// 1. The sequence is analysed (package depgraph); ordering findings are
//    copied into the report as warnings, never enforced at run time
// 2. Each rule runs on the output of the previous one
// 3. Each rule's Result is appended to the Report
//
// The engine never aborts mid-sequence. A rule whose anchors are missing is
// recorded as "no-anchor" and the next rule runs. The engine performs no
// I/O; loading and saving the target file is the caller's job.
//
// DETERMINISM:
//
// Given the same buffer and sequence the output buffer and the per-rule
// outcomes are identical. Only the RunID differs between runs; tests pin it
// with FixedGenerator.
package engine
