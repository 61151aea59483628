package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/conflictpatch/internal/patch"
)

// Scenario defines a patch test scenario.
// Scenarios run part or all of the rule sequence over an input buffer one
// or more times and assert on the resulting buffer and rule outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture names a built-in input buffer. Exactly one of Fixture and
	// Input must be set.
	Fixture string `yaml:"fixture,omitempty"`

	// Input is an inline input buffer.
	Input string `yaml:"input,omitempty"`

	// Rules selects a subset of the shipped sequence, in the given order.
	// Empty means the full sequence.
	Rules []patch.RuleID `yaml:"rules,omitempty"`

	// Move relocates one rule before running.
	Move *MoveStep `yaml:"move,omitempty"`

	// Passes is the number of consecutive runs, each over the previous
	// output. Zero means one.
	Passes int `yaml:"passes,omitempty"`

	// Assertions validate the final buffer and the trace.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run ID for deterministic tests.
	// If empty, defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// MoveStep relocates a rule to a new 0-based position.
type MoveStep struct {
	Rule patch.RuleID `yaml:"rule"`
	To   int          `yaml:"to"`
}

// Assertion validates the final buffer or the trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": final buffer contains Text
	// - "output_excludes": final buffer does not contain Text
	// - "output_order": first occurrences of Texts appear in order
	// - "output_count": Text occurs exactly Count times
	// - "outcome": Rule reported Outcome in Pass (default: last pass)
	// - "stable": the last pass left the buffer unchanged
	Type string `yaml:"type"`

	// Text is the needle for output_contains, output_excludes, output_count.
	Text string `yaml:"text,omitempty"`

	// Texts is the expected order for output_order.
	Texts []string `yaml:"texts,omitempty"`

	// Count is the expected number of occurrences (used by output_count).
	Count int `yaml:"count,omitempty"`

	// Rule and Outcome are used by outcome.
	Rule    patch.RuleID  `yaml:"rule,omitempty"`
	Outcome patch.Outcome `yaml:"outcome,omitempty"`

	// Pass is the 1-based pass used by outcome. Zero means the last pass.
	Pass int `yaml:"pass,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputExcludes = "output_excludes"
	AssertOutputOrder    = "output_order"
	AssertOutputCount    = "output_count"
	AssertOutcome        = "outcome"
	AssertStable         = "stable"
)

// FixtureGame names the pristine simple-game.js fixture.
const FixtureGame = "game"

var validOutcomes = map[patch.Outcome]bool{
	patch.OutcomeApplied:        true,
	patch.OutcomeSkippedByGuard: true,
	patch.OutcomeAlreadyApplied: true,
	patch.OutcomeNoAnchor:       true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Fixture != "" && s.Input != "":
		return fmt.Errorf("fixture and input are mutually exclusive")
	case s.Fixture == "" && s.Input == "":
		return fmt.Errorf("one of fixture or input is required")
	case s.Fixture != "" && s.Fixture != FixtureGame:
		return fmt.Errorf("unknown fixture %q", s.Fixture)
	}

	if s.Passes < 0 {
		return fmt.Errorf("passes must be non-negative")
	}

	if s.Move != nil && s.Move.Rule == "" {
		return fmt.Errorf("move: rule is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputExcludes:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertOutputOrder:
		if len(a.Texts) < 2 {
			return fmt.Errorf("assertions[%d]: at least two texts are required for output_order", index)
		}
	case AssertOutputCount:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for output_count", index)
		}
	case AssertOutcome:
		if a.Rule == "" {
			return fmt.Errorf("assertions[%d]: rule is required for outcome", index)
		}
		if !validOutcomes[a.Outcome] {
			return fmt.Errorf("assertions[%d]: unknown outcome %q", index, a.Outcome)
		}
		if a.Pass < 0 {
			return fmt.Errorf("assertions[%d]: pass must be non-negative", index)
		}
	case AssertStable:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
