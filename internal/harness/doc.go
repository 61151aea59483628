// Package harness runs declarative patch scenarios against the engine.
//
// A scenario names an input buffer, an optional subset or reordering of the
// shipped rule sequence, and how many times to run it. After the runs, its
// assertions are evaluated against the final buffer and the per-rule
// outcomes of every pass.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	fixture: game            # or an inline `input: |` block
//	rules:                   # optional; empty runs the full sequence
//	  - inject-game-over-messages
//	move:                    # optional; relocate one rule before running
//	  rule: inject-random-game-over-message
//	  to: 0
//	passes: 2                # optional; defaults to 1
//	run_id: fixed-run        # optional; defaults to "test-run-default"
//	assertions:
//	  - type: outcome
//	    pass: 2
//	    rule: inject-game-over-messages
//	    outcome: skipped-by-guard
//	  - type: output_contains
//	    text: "const GAME_OVER_MESSAGES = ["
//
// # Assertion Types
//
//   - output_contains: the final buffer contains text
//   - output_excludes: the final buffer does not contain text
//   - output_order: the first occurrences of texts appear in the given order
//   - output_count: text occurs exactly count times in the final buffer
//   - outcome: a rule reported the given outcome in a pass (default: last)
//   - stable: the last pass left the buffer byte-identical
//
// # Deterministic Testing
//
// Every scenario runs with a fixed run ID and a discarding logger, so the
// trace of rule outcomes is identical across runs and can be compared
// against golden files with RunWithGolden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/idempotent.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
